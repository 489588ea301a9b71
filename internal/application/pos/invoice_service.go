package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StockRejectionRecorder counts add-item requests refused for lack of stock
type StockRejectionRecorder interface {
	RecordStockRejection(ctx context.Context)
}

// AddItemResult is the new line together with the recalculated invoice
type AddItemResult struct {
	Item    InvoiceItemResponse `json:"item"`
	Invoice InvoiceResponse     `json:"invoice"`
}

// RecordPaymentResult is the recorded payment together with the recalculated invoice
type RecordPaymentResult struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
	// Replayed is set when an idempotency key matched an earlier payment
	Replayed bool `json:"-"`
}

// InvoiceService handles invoice lifecycle operations: creation, line items,
// payments and voiding. Every mutation runs in one unit of work.
type InvoiceService struct {
	uow          pos.UnitOfWork
	invoiceRepo  pos.InvoiceRepository
	paymentRepo  pos.PaymentRepository
	appointments scheduling.AppointmentRepository
	logger       *zap.Logger

	eventPublisher shared.EventPublisher
	stockMetrics   StockRejectionRecorder
	idempotency    shared.IdempotencyStore
	idemConfig     shared.IdempotencyConfig
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	uow pos.UnitOfWork,
	invoiceRepo pos.InvoiceRepository,
	paymentRepo pos.PaymentRepository,
	appointments scheduling.AppointmentRepository,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		uow:          uow,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		appointments: appointments,
		logger:       logger,
		idemConfig:   shared.DefaultIdempotencyConfig(),
	}
}

// SetEventPublisher sets the publisher that receives invoice events after commit
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetStockMetrics sets the recorder for stock rejections
func (s *InvoiceService) SetStockMetrics(recorder StockRejectionRecorder) {
	s.stockMetrics = recorder
}

// SetIdempotencyStore enables Idempotency-Key handling for payments
func (s *InvoiceService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idemConfig = cfg
}

// CreateInvoice opens a new invoice numbered from the invoice sequence
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor pos.Actor, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create")
	defer span.End()

	status := pos.InvoiceStatusDraft
	if req.Status != "" {
		status = pos.InvoiceStatus(req.Status)
	}

	if req.AppointmentID != nil {
		if _, err := s.appointments.FindByID(ctx, *req.AppointmentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				err = shared.NewDomainError("NOT_FOUND", "Appointment not found")
			}
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	var invoice *pos.Invoice
	err := s.uow.Execute(ctx, func(repos pos.Repositories) error {
		if req.AppointmentID != nil {
			exists, err := repos.Invoices.ExistsForAppointment(ctx, *req.AppointmentID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError("ALREADY_EXISTS", "An invoice already exists for this appointment")
			}
		}

		invoiceNo, err := repos.Sequence.Next(ctx)
		if err != nil {
			return err
		}

		inv, err := pos.NewInvoice(invoiceNo, req.ClientName, req.ClientEmail, req.TaxRate, actor.UserID)
		if err != nil {
			return err
		}
		if err := inv.Open(status); err != nil {
			return err
		}
		if req.AppointmentID != nil {
			inv.LinkAppointment(*req.AppointmentID)
		}
		if req.Notes != "" {
			inv.SetNotes(req.Notes)
		}

		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, invoice.ID.String(),
		telemetry.SpanAttrInvoiceNo, invoice.InvoiceNo,
		telemetry.SpanAttrUserID, actor.UserID.String(),
	)
	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("created_by", actor.UserID.String()),
	)
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// AddItem adds a product line to an invoice. Tracked stock is decremented in
// the same transaction; the whole operation rolls back if the stock is short.
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddItemRequest) (*AddItemResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "add_item",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoiceID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrProductID, req.ProductID.String()),
	)
	defer span.End()

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		err := shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		invoice *pos.Invoice
		item    *pos.InvoiceItem
	)
	err := s.uow.Execute(ctx, func(repos pos.Repositories) error {
		inv, err := repos.Invoices.FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return invoiceNotFound(err)
		}

		product, err := repos.Products.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Product not found or inactive")
			}
			return err
		}
		if !product.IsActive {
			return shared.NewDomainError("NOT_FOUND", "Product not found or inactive")
		}

		if product.IsStockTracked() {
			if err := product.CheckAvailability(quantity); err != nil {
				return err
			}
			if err := repos.Products.DecrementStock(ctx, product.ID, quantity); err != nil {
				return err
			}
			s.logger.Debug("stock decremented",
				zap.String("product_id", product.ID.String()),
				zap.Int("quantity", quantity),
				zap.Int("stock_before", product.StockQty),
			)
		}

		added, err := inv.AddItem(product, quantity)
		if err != nil {
			return err
		}
		if err := repos.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		invoice, item = inv, added
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) && s.stockMetrics != nil {
			s.stockMetrics.RecordStockRejection(ctx)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("invoice item added",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("product_id", item.ProductID.String()),
		zap.Int("quantity", item.Quantity),
		zap.String("total", invoice.Total.StringFixed(2)),
	)
	s.publishEvents(ctx, invoice)

	return &AddItemResult{
		Item:    ToInvoiceItemResponse(item),
		Invoice: ToInvoiceResponse(invoice),
	}, nil
}

// RecordPayment applies a payment to an invoice. Overpayment is accepted.
// A repeated IdempotencyKey returns the payment recorded the first time.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, actor pos.Actor, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "record_payment",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoiceID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrPaymentMethod, req.Method),
	)
	defer span.End()

	// validate before a key is reserved
	if !req.Amount.IsPositive() {
		telemetry.RecordError(span, shared.ErrInvalidAmount)
		return nil, shared.ErrInvalidAmount
	}

	key := req.IdempotencyKey
	if key != "" && s.idempotency != nil && s.idemConfig.Enabled {
		result, done, err := s.reservePaymentKey(ctx, invoiceID, key)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if done {
			telemetry.AddEvent(span, "idempotent_replay", "payment_id", result.Payment.ID.String())
			return result, nil
		}
	} else {
		key = ""
	}

	var (
		invoice *pos.Invoice
		payment *pos.Payment
	)
	err := s.uow.Execute(ctx, func(repos pos.Repositories) error {
		inv, err := repos.Invoices.FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return invoiceNotFound(err)
		}
		p, err := inv.RecordPayment(req.Amount, pos.PaymentMethod(req.Method), req.Reference, actor)
		if err != nil {
			return err
		}
		if err := repos.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		invoice, payment = inv, p
		return nil
	})
	if err != nil {
		if key != "" {
			if relErr := s.idempotency.Release(ctx, key); relErr != nil {
				s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(relErr))
			}
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if key != "" {
		if err := s.idempotency.Complete(ctx, key, payment.ID.String(), s.idemConfig.TTL); err != nil {
			s.logger.Warn("failed to complete idempotency key", zap.String("key", key), zap.Error(err))
		}
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceStatus, invoice.Status.String())
	s.logger.Info("payment recorded",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("payment_id", payment.ID.String()),
		zap.String("method", payment.Method.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("status", invoice.Status.String()),
	)
	s.publishEvents(ctx, invoice)

	return &RecordPaymentResult{
		Payment: ToPaymentResponse(payment),
		Invoice: ToInvoiceResponse(invoice),
	}, nil
}

// reservePaymentKey claims key for a new payment. done is true when the key
// already produced a payment, which is then returned as result.
func (s *InvoiceService) reservePaymentKey(ctx context.Context, invoiceID uuid.UUID, key string) (result *RecordPaymentResult, done bool, err error) {
	if result, err := s.replayPayment(ctx, invoiceID, key); err != nil || result != nil {
		return result, result != nil, err
	}

	reserved, err := s.idempotency.Reserve(ctx, key, s.idemConfig.TTL)
	if err != nil {
		// store outages degrade to recording without the key
		s.logger.Warn("idempotency store unavailable, recording payment without key",
			zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	if reserved {
		return nil, false, nil
	}

	// Lost the race: either the other request finished meanwhile or it is in flight
	if result, err := s.replayPayment(ctx, invoiceID, key); err != nil || result != nil {
		return result, result != nil, err
	}
	return nil, false, shared.NewDomainError("CONCURRENCY_CONFLICT", "A payment with this idempotency key is already in progress")
}

func (s *InvoiceService) replayPayment(ctx context.Context, invoiceID uuid.UUID, key string) (*RecordPaymentResult, error) {
	recorded, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if recorded == "" {
		return nil, nil
	}
	paymentID, err := uuid.Parse(recorded)
	if err != nil {
		return nil, nil
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.InvoiceID != invoiceID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Idempotency key was already used for another invoice")
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}

	s.logger.Info("payment replayed for idempotency key",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("payment_id", payment.ID.String()),
	)
	return &RecordPaymentResult{
		Payment:  ToPaymentResponse(payment),
		Invoice:  ToInvoiceResponse(invoice),
		Replayed: true,
	}, nil
}

// GetInvoice retrieves an invoice with its items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetReceipt retrieves the printable receipt of an invoice
func (s *InvoiceService) GetReceipt(ctx context.Context, invoiceID uuid.UUID) (*ReceiptResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}
	receipt := ToReceiptResponse(invoice)
	return &receipt, nil
}

// ListInvoices lists invoices newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Status != "" && !pos.InvoiceStatus(filter.Status).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status: "+filter.Status)
	}

	domainFilter := listFilter(filter.Page, filter.PageSize)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Search != "" {
		domainFilter.Filters["search"] = filter.Search
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceResponses(invoices), total, nil
}

// VoidInvoice marks an invoice void
func (s *InvoiceService) VoidInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "void",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoiceID.String()),
	)
	defer span.End()

	var invoice *pos.Invoice
	err := s.uow.Execute(ctx, func(repos pos.Repositories) error {
		inv, err := repos.Invoices.FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return invoiceNotFound(err)
		}
		if err := inv.Void(); err != nil {
			return err
		}
		if err := repos.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("invoice voided", zap.String("invoice_no", invoice.InvoiceNo))
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// publishEvents hands committed events to the publisher. Failures are
// logged; the invoice change itself is already durable.
func (s *InvoiceService) publishEvents(ctx context.Context, invoice *pos.Invoice) {
	events := invoice.PendingEvents()
	invoice.ClearEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
	}
}

func invoiceNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return err
}

// listFilter builds a repository filter for one page, leaving the order to
// the repository default
func listFilter(page, pageSize int) shared.Filter {
	filter := shared.Filter{Page: 1, PageSize: 50, Filters: make(map[string]interface{})}
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = min(pageSize, 200)
	}
	return filter
}
