package routing

import (
	"context"
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

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64    `json:"distance"`
		Duration float64    `json:"duration"`
		Geometry lineString `json:"geometry"`
	} `json:"routes"`
}

// OSRMRouteProvider implements RouteProvider using an OSRM server
// (the public demo server needs no credential).
//
// Each call issues exactly one request. The first returned route wins;
// alternatives are not requested. The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	client jsonClient
	log    *zap.Logger
}

func NewOSRMRouteProvider(baseURL string, timeout time.Duration, log *zap.Logger) (*OSRMRouteProvider, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("new OSRM provider: invalid base url %q: %w", baseURL, err)
	}

	return &OSRMRouteProvider{
		client: newJSONClient(baseURL, "", timeout),
		log:    logging.OrNop(log),
	}, nil
}

func (o *OSRMRouteProvider) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) ports.RouteResult {
	route, err := o.route(ctx, origin, destination)
	if err != nil {
		return ports.RouteErr(fmt.Errorf("OSRM route %s -> %s: %w", origin, destination, err))
	}
	return ports.RouteOK(route)
}

func (o *OSRMRouteProvider) route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteInfo, err error) {
	defer obs.Time(ctx, o.log, "osrm.Route")(&err)

	endpoint := fmt.Sprintf("%s/route/v1/driving/%s;%s", o.client.baseURL, origin, destination)

	req, err := o.client.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return domain.RouteInfo{}, err
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("steps", "false")
	req.URL.RawQuery = q.Encode()

	var decoded osrmResponse
	if err := o.client.getJSON(req, &decoded); err != nil {
		return domain.RouteInfo{}, err
	}

	if len(decoded.Routes) == 0 {
		if decoded.Code != "" && decoded.Code != "Ok" {
			return domain.RouteInfo{}, fmt.Errorf("%w: code=%s message=%q", ErrNoRoute, decoded.Code, decoded.Message)
		}
		return domain.RouteInfo{}, ErrNoRoute
	}

	first := decoded.Routes[0]
	return toRoute(first.Distance, first.Duration, first.Geometry)
}
