package generator

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"eventcli/internal/config"
	"eventcli/pkg/contracts/domain"
)

// pcgStream is the fixed PCG increment; the seed alone selects the sequence
const pcgStream = 0x9E3779B97F4A7C15

// Params are the stochastic knobs of the generator
type Params struct {
	Seed              uint64
	CancellationProb  float64
	VirtualPenalty    float64
	LatePenalty       float64
	LateThresholdDays int
	SurveyProb        float64
	MinLeadDays       int
	MaxLeadDays       int
}

// ParamsFromConfig copies generator settings out of the loaded configuration
func ParamsFromConfig(cfg config.GeneratorConfig) Params {
	return Params(cfg)
}

// DefaultParams returns the parameters of the reference dataset
func DefaultParams() Params {
	return ParamsFromConfig(config.Default().Generator)
}

// Generator draws synthetic registrations from a catalog
type Generator struct {
	catalog *Catalog
	params  Params
	logger  *slog.Logger

	rng      *rand.Rand
	cumShare []float64
}

// New validates the catalog and returns a generator seeded from params
func New(catalog *Catalog, params Params, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		catalog:  catalog,
		params:   params,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(params.Seed, pcgStream)),
		cumShare: cumulativeShares(catalog.Channels),
	}, nil
}

// cumulativeShares normalizes channel shares to sum to 1
func cumulativeShares(channels []ChannelSpec) []float64 {
	var total float64
	for _, ch := range channels {
		total += ch.Share
	}
	cum := make([]float64, len(channels))
	var acc float64
	for i, ch := range channels {
		acc += ch.Share / total
		cum[i] = acc
	}
	cum[len(cum)-1] = 1
	return cum
}

// Generate produces one row per catalog registration, events in catalog order
// with IDs starting at 1. The same seed and catalog always produce the same rows.
func (g *Generator) Generate(ctx context.Context) ([]domain.Registration, error) {
	rows := make([]domain.Registration, 0, g.catalog.TotalRegistrations())
	id := 1

	for _, event := range g.catalog.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g.logger.DebugContext(ctx, "generating event registrations",
			slog.String("event", event.Name),
			slog.Int("count", event.Count))

		eventDate := event.EventDate()
		for range event.Count {
			rows = append(rows, g.registration(id, event, eventDate))
			id++
		}
	}

	g.logger.InfoContext(ctx, "generated registrations", slog.Int("rows", len(rows)))
	return rows, nil
}

func (g *Generator) registration(id int, event EventSpec, eventDate time.Time) domain.Registration {
	channel := g.pickChannel()
	lead := g.intRange(g.params.MinLeadDays, g.params.MaxLeadDays)

	status := g.drawStatus(g.attendanceProbability(channel, event.Format, lead))

	available := g.intRange(5, 11)
	if event.Format == domain.EventFormatVirtual {
		available = g.intRange(3, 5)
	}
	registered := g.intRange(1, available)
	attended := 0
	if status == domain.StatusAttended {
		attended = g.intRange(1, registered)
	}

	return domain.Registration{
		ID:                 id,
		EventName:          event.Name,
		EventType:          event.Type,
		EventFormat:        event.Format,
		RegistrationDate:   eventDate.AddDate(0, 0, -lead),
		EventDate:          eventDate,
		Channel:            channel.Name,
		JobTitle:           pick(g.rng, g.catalog.JobTitles),
		Industry:           pick(g.rng, g.catalog.Industries),
		CompanySize:        pick(g.rng, g.catalog.CompanySizes),
		Status:             status,
		SessionsRegistered: registered,
		SessionsAttended:   attended,
		EngagementScore:    g.engagement(status),
		SurveyCompleted:    status == domain.StatusAttended && g.rng.Float64() < g.params.SurveyProb,
		AcquisitionCost:    g.cost(channel),
	}
}

// attendanceProbability applies the format and lead time penalties to the
// channel's base rate, clamped to [0,1]
func (g *Generator) attendanceProbability(channel ChannelSpec, format domain.EventFormat, lead int) float64 {
	p := channel.BaseRate
	if format == domain.EventFormatVirtual {
		p -= g.params.VirtualPenalty
	}
	if lead < g.params.LateThresholdDays {
		p -= g.params.LatePenalty
	}
	return min(1, max(0, p))
}

// drawStatus decides cancellation first, then attendance
func (g *Generator) drawStatus(attendProb float64) domain.AttendanceStatus {
	if g.rng.Float64() < g.params.CancellationProb {
		return domain.StatusCancelled
	}
	if g.rng.Float64() < attendProb {
		return domain.StatusAttended
	}
	return domain.StatusNoShow
}

func (g *Generator) engagement(status domain.AttendanceStatus) int {
	switch status {
	case domain.StatusAttended:
		return clampRound(g.rng.NormFloat64()*2+6.5, 1, 10)
	case domain.StatusNoShow:
		return clampRound(g.rng.NormFloat64()*0.8+1.5, 1, 3)
	default:
		return 0
	}
}

func (g *Generator) cost(channel ChannelSpec) float64 {
	v := channel.CostMin + g.rng.Float64()*(channel.CostMax-channel.CostMin)
	return math.Round(v*100) / 100
}

func (g *Generator) pickChannel() ChannelSpec {
	u := g.rng.Float64()
	for i, c := range g.cumShare {
		if u < c {
			return g.catalog.Channels[i]
		}
	}
	return g.catalog.Channels[len(g.catalog.Channels)-1]
}

// intRange draws uniformly from [lo, hi] inclusive
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func clampRound(v float64, lo, hi int) int {
	return min(hi, max(lo, int(math.Round(v))))
}
