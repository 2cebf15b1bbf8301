package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hotel-chat-backend/internal/dto"
	contactservice "hotel-chat-backend/internal/service/contact"
)

type ContactEndpoints interface {
	SubmitContactInfo(http.ResponseWriter, *http.Request) error
}

type contactEndpoints struct {
	service *contactservice.Service
}

func NewContactEndpoints(service *contactservice.Service) ContactEndpoints {
	return &contactEndpoints{
		service: service,
	}
}

func (h *contactEndpoints) SubmitContactInfo(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSubmitContactInfo,
	})
}

func (h *contactEndpoints) handleSubmitContactInfo(w http.ResponseWriter, r *http.Request) error {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode contact request: %w", err),
		}
	}

	result, err := h.service.Submit(r.Context(), contactservice.SubmitParams{
		UserID: req.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
	})
	if err != nil {
		return mapContactServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ContactResponse{
		Success:  true,
		Message:  "Contact information submitted successfully",
		Response: result.Response,
	})
}

func mapContactServiceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*contactservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("contact service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case contactservice.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	}
}
