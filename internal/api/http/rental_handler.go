package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/logger"
	"calapan-rental-backend/internal/service"
	"calapan-rental-backend/internal/storage"
)

type RentalHandler struct {
	rentals   service.RentalService
	documents storage.DocumentStore
}

func NewRentalHandler(rentals service.RentalService, documents storage.DocumentStore) *RentalHandler {
	return &RentalHandler{rentals: rentals, documents: documents}
}

// Create accepts a multipart form: the request fields plus the government ID
// and, for non-cash payments, the payment receipt. Documents are stored
// before the request is validated; on rejection they are cleaned up again.
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	vehicleID, err := strconv.ParseInt(r.FormValue("vehicle_id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle_id", Field: "vehicle_id"})
		return
	}
	rentalDate, err := time.Parse(time.RFC3339, r.FormValue("rental_date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "rental_date must be RFC 3339", Field: "rental_date"})
		return
	}
	returnDate, err := time.Parse(time.RFC3339, r.FormValue("return_date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "return_date must be RFC 3339", Field: "return_date"})
		return
	}
	gpsConsent, _ := strconv.ParseBool(r.FormValue("gps_consent"))

	input := service.CreateRentalInput{
		VehicleID:     int32(vehicleID),
		RentalDate:    rentalDate,
		ReturnDate:    returnDate,
		PaymentMethod: domain.PaymentMethod(r.FormValue("payment_method")),
		Destination:   r.FormValue("destination"),
		GpsConsent:    gpsConsent,
	}

	savedPaths := []string{}
	cleanup := func() {
		for _, path := range savedPaths {
			if err := h.documents.Delete(path); err != nil {
				logger.Warn("failed to clean up document", "path", path, "error", err)
			}
		}
	}

	if path, err := h.saveUpload(r, "government_id", storage.DocumentGovernmentID); err != nil {
		cleanup()
		writeError(w, err)
		return
	} else if path != "" {
		input.GovernmentIDPath = path
		savedPaths = append(savedPaths, path)
	}

	if path, err := h.saveUpload(r, "payment_receipt", storage.DocumentPaymentReceipt); err != nil {
		cleanup()
		writeError(w, err)
		return
	} else if path != "" {
		input.PaymentReceiptPath = path
		savedPaths = append(savedPaths, path)
	}

	rental, err := h.rentals.CreateRentalRequest(r.Context(), p, input)
	if err != nil {
		cleanup()
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// saveUpload stores the named form file, returning "" when the part is
// absent. Presence requirements are enforced by the service, not here.
func (h *RentalHandler) saveUpload(r *http.Request, field string, kind storage.DocumentKind) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", &domain.ValidationError{Field: field, Reason: "invalid file upload"}
	}
	defer func(f multipart.File) { _ = f.Close() }(file)
	return h.documents.Save(kind, header.Filename, header.Size, file)
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	rental, err := h.rentals.ApproveRental(r.Context(), p, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	// the reason is optional; an empty body means no reason given
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rental, err := h.rentals.RejectRental(r.Context(), p, id, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	var body struct {
		DepositStatus string `json:"deposit_status"`
		Notes         string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rental, err := h.rentals.ReturnRental(r.Context(), p, id, domain.DepositStatus(body.DepositStatus), body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), p, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	status, page, pageSize := listParams(r)
	rentals, total, err := h.rentals.ListRentals(r.Context(), p, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Rental]{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	status, page, pageSize := listParams(r)
	rentals, total, err := h.rentals.ListMyRentals(r.Context(), p, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Rental]{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func listParams(r *http.Request) (domain.RentalStatus, int32, int32) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	page := int32(1)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return status, page, pageSize
}
