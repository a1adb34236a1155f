package partyservice

import (
	"context"
	"encoding/json"
	"errors"
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

// Client клиент для работы с PartyService (внешний реестр врачей и пациентов)
// Ядро планировщика не хранит профили: врачи, пациенты и специальности
// разрешаются по идентификатору через этот клиент
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PartyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctor получает врача по идентификатору healthprof
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/doctors/%d", c.baseURL, doctorID)

	var doctor Doctor
	if err := c.getJSON(ctx, url, &doctor, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	return &doctor, nil
}

// GetDoctorByUser получает врача по идентификатору пользователя
// Возвращает ErrDoctorNotFound, если пользователь не является врачом
func (c *Client) GetDoctorByUser(ctx context.Context, userID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/users/%d/doctor", c.baseURL, userID)

	var doctor Doctor
	if err := c.getJSON(ctx, url, &doctor, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	return &doctor, nil
}

// GetPatientByUser получает пациента по идентификатору пользователя
// Возвращает ErrPatientNotFound, если пользователь не зарегистрирован как пациент
func (c *Client) GetPatientByUser(ctx context.Context, userID int64) (*Patient, error) {
	url := fmt.Sprintf("%s/internal/users/%d/patient", c.baseURL, userID)

	var patient Patient
	if err := c.getJSON(ctx, url, &patient, ErrPatientNotFound); err != nil {
		return nil, err
	}

	return &patient, nil
}

// GetDoctorsBySpecialty получает список врачей с указанной специальностью
func (c *Client) GetDoctorsBySpecialty(ctx context.Context, specialtyID int64) ([]Doctor, error) {
	url := fmt.Sprintf("%s/internal/specialties/%d/doctors", c.baseURL, specialtyID)

	var doctors []Doctor
	if err := c.getJSON(ctx, url, &doctors, ErrSpecialtyNotFound); err != nil {
		return nil, err
	}

	c.log.Info("GetDoctorsBySpecialty: specialty=%d resolved to %d doctors", specialtyID, len(doctors))
	return doctors, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается на 404
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// IsNotFound возвращает true для ошибок разрешения идентификаторов
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDoctorNotFound) ||
		errors.Is(err, ErrPatientNotFound) ||
		errors.Is(err, ErrSpecialtyNotFound)
}
