package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"calapan-rental-backend/internal/security"
	"calapan-rental-backend/internal/service"
	"calapan-rental-backend/internal/storage"
)

// NewRouter builds the API router. Vehicle browsing is public; everything
// else requires a valid bearer token. Role checks happen in the services.
func NewRouter(
	tm security.TokenManager,
	rentals service.RentalService,
	vehicles service.VehicleService,
	notifications service.NotificationService,
	documents storage.DocumentStore,
) *mux.Router {
	rentalHandler := NewRentalHandler(rentals, documents)
	vehicleHandler := NewVehicleHandler(vehicles)
	notificationHandler := NewNotificationHandler(notifications)
	documentHandler := NewDocumentHandler(documents)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tm))

	authed.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)

	authed.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/mine", rentalHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}/approve", rentalHandler.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/reject", rentalHandler.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/return", rentalHandler.Return).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	authed.HandleFunc("/documents/{kind}/{name}", documentHandler.Download).Methods(http.MethodGet)

	return r
}
