package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"hotel-chat-backend/internal/dto"
	uploadservice "hotel-chat-backend/internal/service/upload"
	"hotel-chat-backend/internal/webhook"
)

type AdminEndpoints interface {
	UploadHotelInfo(http.ResponseWriter, *http.Request) error
}

type adminEndpoints struct {
	service *uploadservice.Service
}

func NewAdminEndpoints(service *uploadservice.Service) AdminEndpoints {
	return &adminEndpoints{
		service: service,
	}
}

func (h *adminEndpoints) UploadHotelInfo(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleUploadHotelInfo,
	})
}

func (h *adminEndpoints) handleUploadHotelInfo(w http.ResponseWriter, r *http.Request) error {
	// One spare MiB so the limit violation is reported by validation, not by
	// a truncated read.
	r.Body = http.MaxBytesReader(w, r.Body, webhook.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "No file provided",
				ErrorLog:   fmt.Errorf("upload without file field"),
			}
		}
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("parse multipart form: %w", err),
		}
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), uploadservice.UploadParams{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		return mapUploadServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.UploadResponse{
		Success:     true,
		Message:     "File uploaded successfully",
		FileName:    result.FileName,
		FileSize:    result.FileSize,
		N8NResponse: result.Response,
	})
}

func mapUploadServiceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*uploadservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("upload service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case uploadservice.ErrorCodeValidation:
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
