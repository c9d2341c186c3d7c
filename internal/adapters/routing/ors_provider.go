package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/platform/obs"
	"relocation-route-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

type orsDirectionsResponse struct {
	Features []struct {
		Geometry   lineString `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint (GET /v2/directions/{profile}).
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	client  jsonClient
	profile string
	log     *zap.Logger
}

func NewORSRouteProvider(
	apiKey string,
	baseURL string,
	profile string,
	timeout time.Duration,
	log *zap.Logger,
) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("new ORS provider: invalid base url %q: %w", baseURL, err)
	}
	if profile == "" {
		profile = "driving-car"
	}

	return &ORSRouteProvider{
		client:  newJSONClient(baseURL, apiKey, timeout),
		profile: profile,
		log:     logging.OrNop(log),
	}, nil
}

func (o *ORSRouteProvider) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) ports.RouteResult {
	route, err := o.route(ctx, origin, destination)
	if err != nil {
		return ports.RouteErr(fmt.Errorf("ORS route %s -> %s: %w", origin, destination, err))
	}
	return ports.RouteOK(route)
}

func (o *ORSRouteProvider) route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteInfo, err error) {
	defer obs.Time(ctx, o.log, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.client.baseURL, o.profile)

	req, err := o.client.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return domain.RouteInfo{}, err
	}

	q := req.URL.Query()
	q.Set("start", origin.String())
	q.Set("end", destination.String())
	req.URL.RawQuery = q.Encode()

	var decoded orsDirectionsResponse
	if err := o.client.getJSON(req, &decoded); err != nil {
		return domain.RouteInfo{}, err
	}

	if len(decoded.Features) == 0 {
		return domain.RouteInfo{}, ErrNoRoute
	}

	first := decoded.Features[0]
	return toRoute(first.Properties.Summary.Distance, first.Properties.Summary.Duration, first.Geometry)
}
