package interaction

import (
	"context"

	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
)

var _ fleetmanager.FleetManager = (*FleetManagerMock)(nil)

type FleetManagerMock struct {
	orders    map[string]fleetmanager.Order
	customers map[int64]fleetmanager.Customer
	pageURLs  map[int]string

	confirmedOrders []int64
	invoiceNotes    []fleetmanager.InvoiceNote
	notifiedOrders  []int64

	confirmErr  error
	customerErr error
}

func NewFleetManagerMock() *FleetManagerMock {
	return &FleetManagerMock{
		orders:    make(map[string]fleetmanager.Order),
		customers: make(map[int64]fleetmanager.Customer),
		pageURLs:  make(map[int]string),
	}
}

func (m *FleetManagerMock) GetOrderByCode(ctx context.Context, bookingCode string) (fleetmanager.Order, error) {
	order, ok := m.orders[bookingCode]
	if !ok {
		return fleetmanager.Order{}, fleetmanager.ErrOrderNotFound
	}
	return order, nil
}

func (m *FleetManagerMock) GetCustomer(ctx context.Context, customerID int64) (fleetmanager.Customer, error) {
	if m.customerErr != nil {
		return fleetmanager.Customer{}, m.customerErr
	}
	return m.customers[customerID], nil
}

func (m *FleetManagerMock) ConfirmOrder(ctx context.Context, orderID int64, customerEmail string) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmedOrders = append(m.confirmedOrders, orderID)
	for code, order := range m.orders {
		if order.ID == orderID {
			order.Status = fleetmanager.OrderStatusConfirmed
			m.orders[code] = order
		}
	}
	return nil
}

func (m *FleetManagerMock) AppendInvoiceNote(ctx context.Context, orderID int64, note fleetmanager.InvoiceNote) error {
	m.invoiceNotes = append(m.invoiceNotes, note)
	return nil
}

func (m *FleetManagerMock) SendOrderConfirmedNotifications(ctx context.Context, orderID int64) error {
	m.notifiedOrders = append(m.notifiedOrders, orderID)
	return nil
}

func (m *FleetManagerMock) TranslatedPageURL(ctx context.Context, pageID int) (string, error) {
	return m.pageURLs[pageID], nil
}

var _ billplz.Billplz = (*BillplzMock)(nil)

type BillplzMock struct {
	createBillFunc func(request billplz.BillRequest) (billplz.Bill, error)
	getBillFunc    func(billID string) (billplz.Bill, error)

	createBillCalls []billplz.BillRequest
	getBillCalls    []string
}

func (m *BillplzMock) CreateBill(ctx context.Context, request billplz.BillRequest) (billplz.Bill, error) {
	m.createBillCalls = append(m.createBillCalls, request)
	if m.createBillFunc == nil {
		return billplz.Bill{}, nil
	}
	return m.createBillFunc(request)
}

func (m *BillplzMock) GetBill(ctx context.Context, billID string) (billplz.Bill, error) {
	m.getBillCalls = append(m.getBillCalls, billID)
	if m.getBillFunc == nil {
		return billplz.Bill{}, nil
	}
	return m.getBillFunc(billID)
}
