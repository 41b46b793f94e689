package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rehlatours/umrahbooking/api"
	"github.com/rehlatours/umrahbooking/config"
	"github.com/rehlatours/umrahbooking/internal/service/booking"
	"github.com/rehlatours/umrahbooking/internal/service/packages"
	"github.com/rehlatours/umrahbooking/internal/whatsapp"
)

// Run assembles the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, packageSvc packages.PackageUseCase, waClient *whatsapp.Client) error {
	router := gin.Default()

	bookingHandler := api.NewBookingHandler(bookingSvc)
	packageHandler := api.NewPackageHandler(packageSvc)
	sendFileHandler := api.NewSendFileHandler(waClient)

	group := router.Group("/api")
	bookingHandler.Register(group.Group("/bookings"))
	packageHandler.Register(group.Group("/packages"))
	sendFileHandler.Register(group)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
