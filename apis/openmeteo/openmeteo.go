package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/time/rate"

	"weatherdash/config"
	"weatherdash/manager"
)

const (
	apiName    = "api.open-meteo.com"
	tracerName = "weatherdash/openmeteo"

	fetchFailed = "Failed to fetch weather data"
)

func New(cfg config.Forecast, logger logr.Logger) *forecast {
	f := &forecast{
		client:   resty.New().SetTimeout(cfg.Timeout).SetHeader("Accept", "application/json"),
		endpoint: cfg.Endpoint,
		timezone: cfg.Timezone,
		logger:   logger.WithName("openmeteo"),
	}

	if f.timezone == "" {
		f.timezone = "auto"
	}

	if cfg.RateLimit > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return f
}

type forecast struct {
	client   *resty.Client
	endpoint string
	timezone string
	limiter  *rate.Limiter
	logger   logr.Logger
}

var _ manager.Forecast = (*forecast)(nil)

func (f *forecast) Fetch(ctx context.Context, latitude, longitude float64) (manager.Payload, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GET-WEATHER")
	defer span.End()
	span.SetAttributes(attribute.Float64("latitude", latitude), attribute.Float64("longitude", longitude))

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return manager.Payload{}, &manager.UpstreamError{Message: fetchFailed, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
		}
	}

	params := map[string]string{
		"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
		"current":   currentParam,
		"hourly":    hourlyParam,
		"daily":     dailyParam,
		"timezone":  f.timezone,
	}

	info, err := f.processRequest(ctx, params)
	if err != nil {
		span.RecordError(err)
		return manager.Payload{}, err
	}

	f.logger.V(1).Info("forecast fetched", "provider", apiName, "latitude", latitude, "longitude", longitude, "days", info.Daily.Len())

	return info, nil
}

func (f *forecast) processRequest(ctx context.Context, params map[string]string) (manager.Payload, error) {
	request := f.client.R().SetContext(ctx)
	request.SetQueryParams(params)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	response, err := request.Get(f.endpoint)
	if err != nil {
		return manager.Payload{}, &manager.UpstreamError{Message: fetchFailed, Err: err}
	}

	if !response.IsSuccess() {
		return manager.Payload{}, &manager.UpstreamError{
			Message:    fetchFailed,
			StatusCode: response.StatusCode(),
			Err:        fmt.Errorf("status code: %d\n%s", response.StatusCode(), response.String()),
		}
	}

	var info result
	if err = json.Unmarshal(response.Body(), &info); err != nil {
		return manager.Payload{}, &manager.UpstreamError{Message: fetchFailed, Err: fmt.Errorf("decode forecast: %w", err)}
	}

	return info.payload(), nil
}

// result mirrors the subset of the response the dashboard reads.
type result struct {
	Current struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		Precipitation       float64 `json:"precipitation"`
		Rain                float64 `json:"rain"`
		Showers             float64 `json:"showers"`
		Snowfall            float64 `json:"snowfall"`
		WeatherCode         int     `json:"weather_code"`
		CloudCover          float64 `json:"cloud_cover"`
		PressureMSL         float64 `json:"pressure_msl"`
		SurfacePressure     float64 `json:"surface_pressure"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		WindGusts           float64 `json:"wind_gusts_10m"`
	} `json:"current"`
	Hourly struct {
		Time             []string   `json:"time"`
		Temperature      []float64  `json:"temperature_2m"`
		RelativeHumidity []float64  `json:"relative_humidity_2m"`
		WeatherCode      []int      `json:"weather_code"`
		Visibility       []*float64 `json:"visibility"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string   `json:"time"`
		WeatherCode                 []int      `json:"weather_code"`
		TemperatureMax              []float64  `json:"temperature_2m_max"`
		TemperatureMin              []float64  `json:"temperature_2m_min"`
		ApparentTemperatureMax      []float64  `json:"apparent_temperature_max"`
		ApparentTemperatureMin      []float64  `json:"apparent_temperature_min"`
		Sunrise                     []string   `json:"sunrise"`
		Sunset                      []string   `json:"sunset"`
		UVIndexMax                  []*float64 `json:"uv_index_max"`
		PrecipitationSum            []float64  `json:"precipitation_sum"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		WindSpeedMax                []float64  `json:"wind_speed_10m_max"`
		WindDirectionDominant       []float64  `json:"wind_direction_10m_dominant"`
	} `json:"daily"`
}

func (r result) payload() manager.Payload {
	c := r.Current

	return manager.Payload{
		Current: manager.Current{
			Time:                c.Time,
			Temperature:         c.Temperature,
			ApparentTemperature: c.ApparentTemperature,
			RelativeHumidity:    c.RelativeHumidity,
			IsDay:               c.IsDay != 0,
			Precipitation:       c.Precipitation,
			Rain:                c.Rain,
			Showers:             c.Showers,
			Snowfall:            c.Snowfall,
			WeatherCode:         c.WeatherCode,
			CloudCover:          c.CloudCover,
			PressureMSL:         c.PressureMSL,
			SurfacePressure:     c.SurfacePressure,
			WindSpeed:           c.WindSpeed,
			WindDirection:       c.WindDirection,
			WindGusts:           c.WindGusts,
		},
		Hourly: manager.Hourly{
			Time:             r.Hourly.Time,
			Temperature:      r.Hourly.Temperature,
			RelativeHumidity: r.Hourly.RelativeHumidity,
			WeatherCode:      r.Hourly.WeatherCode,
			Visibility:       r.Hourly.Visibility,
		},
		Daily: manager.Daily{
			Time:                        r.Daily.Time,
			WeatherCode:                 r.Daily.WeatherCode,
			TemperatureMax:              r.Daily.TemperatureMax,
			TemperatureMin:              r.Daily.TemperatureMin,
			ApparentTemperatureMax:      r.Daily.ApparentTemperatureMax,
			ApparentTemperatureMin:      r.Daily.ApparentTemperatureMin,
			Sunrise:                     r.Daily.Sunrise,
			Sunset:                      r.Daily.Sunset,
			UVIndexMax:                  r.Daily.UVIndexMax,
			PrecipitationSum:            r.Daily.PrecipitationSum,
			PrecipitationProbabilityMax: r.Daily.PrecipitationProbabilityMax,
			WindSpeedMax:                r.Daily.WindSpeedMax,
			WindDirectionDominant:       r.Daily.WindDirectionDominant,
		},
	}
}
