package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с прайсинг-сервисом
// Стоимость никогда не участвует в решении о допуске заявки - только
// заполняет информационные поля rental_fee / estimated_value
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента прайсинг-сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ComputeRentalFee рассчитывает стоимость аренды инструмента
// При недоступности сервиса возвращает ErrServiceDegraded - вызывающая сторона
// продолжает с нулевой стоимостью
func (c *Client) ComputeRentalFee(ctx context.Context, instrumentID int64, quantity, days int) (float64, error) {
	reqBody := RentalFeeRequest{
		InstrumentID: instrumentID,
		Quantity:     quantity,
		Days:         days,
	}

	quote, err := c.post(ctx, "/internal/pricing/rental-fee", reqBody)
	if err != nil {
		c.log.Error("Pricing service unavailable, applying graceful degradation for instrument_id=%d: %v", instrumentID, err)
		return 0, fmt.Errorf("%w: instrument_id=%d, error=%v", ErrServiceDegraded, instrumentID, err)
	}

	return quote.Amount, nil
}

// ComputeBookingEstimate рассчитывает оценочную стоимость выступления
func (c *Client) ComputeBookingEstimate(ctx context.Context, eventDate, startTime, endTime string) (float64, error) {
	reqBody := BookingEstimateRequest{
		EventDate: eventDate,
		StartTime: startTime,
		EndTime:   endTime,
	}

	quote, err := c.post(ctx, "/internal/pricing/booking-estimate", reqBody)
	if err != nil {
		c.log.Error("Pricing service unavailable, applying graceful degradation for event_date=%s: %v", eventDate, err)
		return 0, fmt.Errorf("%w: event_date=%s, error=%v", ErrServiceDegraded, eventDate, err)
	}

	return quote.Amount, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*Quote, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &quote, nil
}
