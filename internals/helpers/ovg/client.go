package ovg

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"clubfit_backend/internals/configs"
)

// RawClass é a aula crua como o OVG devolve: horários completos de
// início/fim, sala, professor e a intensidade em texto livre.
type RawClass struct {
	Title         string `json:"title"`
	Start         string `json:"start"` // RFC3339
	End           string `json:"end"`   // RFC3339
	Room          string `json:"room"`
	Instructor    string `json:"instructor"`
	IntensityText string `json:"intensity"`
}

// Client abstrai o serviço de calendário do OVG para a visão semanal.
type Client interface {
	FetchWeek(ctx context.Context, monday time.Time) ([]RawClass, error)
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient() Client {
	return &httpClient{
		baseURL: configs.OVGBaseURL,
		token:   configs.OVGAPIToken,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) FetchWeek(ctx context.Context, monday time.Time) ([]RawClass, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("OVG_BASE_URL não configurado")
	}

	url := fmt.Sprintf("%s/aulas/semana?inicio=%s", c.baseURL, monday.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ovg fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ovg fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("ovg read: %w", err)
	}

	classes, err := NormalizeEnvelope(body)
	if err != nil {
		return nil, err
	}
	log.Printf("[OVG] semana %s: %d aulas", monday.Format("2006-01-02"), len(classes))
	return classes, nil
}
