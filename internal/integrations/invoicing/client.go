package invoicing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// InvoiceRequest запрос на выставление счета за подтвержденное бронирование
type InvoiceRequest struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

// Client клиент сервиса счетов
// Вызывается best-effort после подтверждения бронирования: фиксация перехода
// не ждет создания счета, ошибка только логируется
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса счетов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateInvoice выставляет счет за подтвержденное бронирование
func (c *Client) CreateInvoice(ctx context.Context, bookingID int64, amount float64) error {
	body, err := json.Marshal(InvoiceRequest{
		BookingID: bookingID,
		Amount:    amount,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/invoices", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	return nil
}
