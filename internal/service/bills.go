package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/auth"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BillManager is the bill logic the HTTP handlers depend on.
type BillManager interface {
	CreateBill(ctx context.Context, req *dto.CreateBillRequest) (*models.GymBill, error)
	GetBill(ctx context.Context, id primitive.ObjectID) (*models.GymBill, error)
	ListBills(ctx context.Context) ([]*models.GymBill, error)
	NextMemberID(ctx context.Context) (string, error)
	GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.ProfilePicture, error)
	UpdateBill(ctx context.Context, req *dto.UpdateBillRequest) (*models.GymBill, error)
	RenewBill(ctx context.Context, req *dto.RenewBillRequest) (*models.GymBill, error)
	EditRenewal(ctx context.Context, req *dto.EditRenewalRequest) (*models.GymBill, error)
	DeleteRenewal(ctx context.Context, req *dto.DeleteRenewalRequest) (*models.GymBill, error)
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*models.GymBill, error)
	DeleteBill(ctx context.Context, req *dto.DeleteBillRequest) error
}

// BillsHandler serves the /bills routes.
type BillsHandler struct {
	bills         BillManager
	maxImageBytes int64
	logger        *zap.Logger
}

func NewBillsHandler(bills BillManager, cfg *conf.BillsConfig, logger *zap.Logger) *BillsHandler {
	return &BillsHandler{
		bills:         bills,
		maxImageBytes: cfg.MaxImageBytes,
		logger:        logger.Named("BillsHandler"),
	}
}

func (h *BillsHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequest
	pic, err := decodeBody(w, r, h.maxImageBytes, &req)
	if err != nil {
		fail(w, h.logger, "CreateBill", err)
		return
	}
	req.Picture = pic
	req.Operator = auth.Operator(r.Context())

	bill, err := h.bills.CreateBill(r.Context(), &req)
	if err != nil {
		fail(w, h.logger, "CreateBill", err)
		return
	}
	WriteJSON(w, http.StatusCreated, &dto.CreateBillResponse{
		Message:  "Gym bill created successfully",
		MemberID: bill.MemberID,
		Data:     dto.NewBillView(bill),
	})
}

func (h *BillsHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.ListBills(r.Context())
	if err != nil {
		fail(w, h.logger, "ListBills", err)
		return
	}
	views := make([]*dto.BillView, 0, len(bills))
	for _, b := range bills {
		views = append(views, dto.NewBillView(b))
	}
	WriteJSON(w, http.StatusOK, views)
}

func (h *BillsHandler) NextMemberID(w http.ResponseWriter, r *http.Request) {
	id, err := h.bills.NextMemberID(r.Context())
	if err != nil {
		fail(w, h.logger, "NextMemberID", err)
		return
	}
	WriteJSON(w, http.StatusOK, &dto.NextMemberIDResponse{NextMemberID: id})
}

func (h *BillsHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "GetBill", err)
		return
	}
	bill, err := h.bills.GetBill(r.Context(), id)
	if err != nil {
		fail(w, h.logger, "GetBill", err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBillView(bill))
}

func (h *BillsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "GetImage", err)
		return
	}
	pic, err := h.bills.GetProfilePicture(r.Context(), id)
	if err != nil {
		fail(w, h.logger, "GetImage", err)
		return
	}
	w.Header().Set("Content-Type", pic.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(pic.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pic.Data); err != nil {
		h.logger.Warn("GetImage: failed to write image", zap.Error(err), zap.Stringer("id", id))
	}
}

func (h *BillsHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "UpdateBill", err)
		return
	}
	var req dto.UpdateBillRequest
	pic, err := decodeOptionalBody(w, r, h.maxImageBytes, &req)
	if err != nil {
		fail(w, h.logger, "UpdateBill", err)
		return
	}
	req.ID = id
	req.Picture = pic
	req.Operator = auth.Operator(r.Context())

	h.respondBill(w, "UpdateBill", func() (*models.GymBill, error) { return h.bills.UpdateBill(r.Context(), &req) })
}

func (h *BillsHandler) RenewBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "RenewBill", err)
		return
	}
	var req dto.RenewBillRequest
	if _, err := decodeBody(w, r, h.maxImageBytes, &req); err != nil {
		fail(w, h.logger, "RenewBill", err)
		return
	}
	req.ID = id
	req.Operator = auth.Operator(r.Context())

	h.respondBill(w, "RenewBill", func() (*models.GymBill, error) { return h.bills.RenewBill(r.Context(), &req) })
}

func (h *BillsHandler) EditRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "EditRenewal", err)
		return
	}
	renewalID, err := pathObjectID(r, "renewalId")
	if err != nil {
		fail(w, h.logger, "EditRenewal", err)
		return
	}
	var req dto.EditRenewalRequest
	if _, err := decodeBody(w, r, h.maxImageBytes, &req); err != nil {
		fail(w, h.logger, "EditRenewal", err)
		return
	}
	req.ID = id
	req.RenewalID = renewalID
	req.Operator = auth.Operator(r.Context())

	h.respondBill(w, "EditRenewal", func() (*models.GymBill, error) { return h.bills.EditRenewal(r.Context(), &req) })
}

func (h *BillsHandler) DeleteRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "DeleteRenewal", err)
		return
	}
	renewalID, err := pathObjectID(r, "renewalId")
	if err != nil {
		fail(w, h.logger, "DeleteRenewal", err)
		return
	}
	req := &dto.DeleteRenewalRequest{ID: id, RenewalID: renewalID, Operator: auth.Operator(r.Context())}

	h.respondBill(w, "DeleteRenewal", func() (*models.GymBill, error) { return h.bills.DeleteRenewal(r.Context(), req) })
}

func (h *BillsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "RecordPayment", err)
		return
	}
	var req dto.RecordPaymentRequest
	if _, err := decodeBody(w, r, h.maxImageBytes, &req); err != nil {
		fail(w, h.logger, "RecordPayment", err)
		return
	}
	req.ID = id
	req.Operator = auth.Operator(r.Context())

	h.respondBill(w, "RecordPayment", func() (*models.GymBill, error) { return h.bills.RecordPayment(r.Context(), &req) })
}

func (h *BillsHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "DeleteBill", err)
		return
	}
	if err := h.bills.DeleteBill(r.Context(), &dto.DeleteBillRequest{ID: id, Operator: auth.Operator(r.Context())}); err != nil {
		fail(w, h.logger, "DeleteBill", err)
		return
	}
	WriteJSON(w, http.StatusOK, &MessageResponse{Message: "Client deleted successfully"})
}

func (h *BillsHandler) respondBill(w http.ResponseWriter, op string, call func() (*models.GymBill, error)) {
	bill, err := call()
	if err != nil {
		fail(w, h.logger, op, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBillView(bill))
}
