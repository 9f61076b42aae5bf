package washroom

import "context"

// ConfigStore is the part of the record store the configuration endpoints need.
type ConfigStore interface {
	Configurations(ctx context.Context) ([]Config, error)
}

// Service exposes the configured washrooms.
type Service struct {
	store ConfigStore
}

// NewService creates a new washroom Service.
func NewService(store ConfigStore) *Service {
	return &Service{store: store}
}

// ListConfigurations returns every configuration with its id, filling gaps with "N/A".
func (s *Service) ListConfigurations(ctx context.Context) ([]ConfigResponse, error) {
	configs, err := s.store.Configurations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, ConfigResponse{
			ID:         c.ID.String(),
			ToiletType: orDefault(c.ToiletType, "N/A"),
			Floor:      orDefault(c.Floor, "N/A"),
		})
	}
	return out, nil
}

// ListWashrooms returns the configured (floor, toiletType) pairs.
func (s *Service) ListWashrooms(ctx context.Context) ([]WashroomResponse, error) {
	configs, err := s.store.Configurations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WashroomResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, WashroomResponse{Floor: c.Floor, ToiletType: c.ToiletType})
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
