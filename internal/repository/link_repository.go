package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rowjay/scissors/internal/client"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/dto"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/models"
	"github.com/rs/zerolog/log"
)

type LinkRepository interface {
	Create(ctx context.Context, req *dto.CreateLinkRequest) (*models.Link, error)
	List(ctx context.Context, page int) (*models.LinkPage, error)
}

type linkRepositoryImpl struct {
	c *client.LinkServiceClient
}

func NewLinkRepository(c *client.LinkServiceClient) LinkRepository {
	return &linkRepositoryImpl{c: c}
}

func (r *linkRepositoryImpl) Create(ctx context.Context, req *dto.CreateLinkRequest) (*models.Link, error) {
	log.Debug().Str("url", req.OriginalURL).Str("alias", req.Alias).Msg("Creating short link")

	ctx, cancel := context.WithTimeout(ctx, r.c.RequestTimeout)
	defer cancel()

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, serviceErrors.NewInternalError("repository.Create", "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.c.URL(constants.LinksPath), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, serviceErrors.NewInternalError("repository.Create", "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.c.HTTPClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reach the Link Service")
		return nil, serviceErrors.NewTransportError("repository.Create", "failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var errResp dto.ServiceErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			log.Error().Err(err).Int("status", resp.StatusCode).Msg("Failed to decode error response")
			return nil, serviceErrors.NewDecodeError("repository.Create", fmt.Sprintf("undecodable status %d response", resp.StatusCode), err)
		}
		log.Warn().Int("status", resp.StatusCode).Str("message", errResp.Message).Msg("Link Service rejected link")
		return nil, serviceErrors.NewRejectedError("repository.Create", resp.StatusCode, errResp.Message)
	}

	var created dto.CreateLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Error().Err(err).Msg("Failed to decode response")
		return nil, serviceErrors.NewDecodeError("repository.Create", "failed to decode response", err)
	}

	link := toLink(created.LinkRecord)
	log.Info().Str("short_url", link.ShortURL).Str("id", link.ID).Msg("Short link created")
	return &link, nil
}

func (r *linkRepositoryImpl) List(ctx context.Context, page int) (*models.LinkPage, error) {
	log.Debug().Int("page", page).Msg("Listing links")

	ctx, cancel := context.WithTimeout(ctx, r.c.RequestTimeout)
	defer cancel()

	reqURL := r.c.URL(constants.LinksPath)
	if page > constants.FirstPage {
		reqURL += "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, serviceErrors.NewInternalError("repository.List", "failed to create request", err)
	}

	resp, err := r.c.HTTPClient.Do(req)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to list links")
		return nil, serviceErrors.NewTransportError("repository.List", "failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Int("page", page).Msg("Link Service returned error status")
		return nil, serviceErrors.NewTransportError("repository.List", "Link Service error", fmt.Errorf("status %d", resp.StatusCode))
	}

	var listResp dto.ListLinksResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		log.Error().Err(err).Msg("Failed to decode response")
		return nil, serviceErrors.NewDecodeError("repository.List", "failed to decode response", err)
	}

	result := &models.LinkPage{
		Data:       make([]models.Link, len(listResp.Data)),
		TotalPages: listResp.TotalPages,
	}
	for i, rec := range listResp.Data {
		result.Data[i] = toLink(rec)
	}

	log.Debug().Int("page", page).Int("count", len(result.Data)).Int("total_pages", result.TotalPages).Msg("Links listed")
	return result, nil
}
