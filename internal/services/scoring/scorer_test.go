package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPulse/internal/domain/models"
)

func sig(score int) models.Signal {
	return models.NewSignal(score, "", "")
}

func TestScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, DefaultWeights().Score(nil))
	assert.Equal(t, 0, DefaultWeights().Score(map[models.SignalKey]models.Signal{}))
}

func TestScoreOnlyUnknownKeys(t *testing.T) {
	got := DefaultWeights().Score(map[models.SignalKey]models.Signal{
		"visa":    sig(100),
		"traffic": sig(40),
	})
	assert.Equal(t, 0, got)
}

func TestScoreSingleSignalRenormalises(t *testing.T) {
	for _, k := range models.AllSignalKeys {
		got := DefaultWeights().Score(map[models.SignalKey]models.Signal{k: sig(80)})
		assert.Equal(t, 80, got, k)
	}
}

func TestScoreWorkedExample(t *testing.T) {
	// 80*.30 + 90*.25 + 70*.20 = 60.5 over .75 = 80.67
	got := DefaultWeights().Score(map[models.SignalKey]models.Signal{
		models.SignalWeather:  sig(80),
		models.SignalSafety:   sig(90),
		models.SignalCurrency: sig(70),
	})
	assert.Equal(t, 80, got)
}

func TestScoreAllSignals(t *testing.T) {
	// 85*.30 + 74*.25 + 40*.20 + 80*.15 + 73*.10 = 71.3
	got := DefaultWeights().Score(map[models.SignalKey]models.Signal{
		models.SignalWeather:  sig(85),
		models.SignalSafety:   sig(74),
		models.SignalCurrency: sig(40),
		models.SignalHolidays: sig(80),
		models.SignalFlights:  sig(73),
	})
	assert.Equal(t, 71, got)
}

func TestScoreIgnoresUnweightedAlongsideKnown(t *testing.T) {
	got := DefaultWeights().Score(map[models.SignalKey]models.Signal{
		models.SignalWeather: sig(50),
		"visa":               sig(100),
	})
	assert.Equal(t, 50, got)
}

func TestScoreSkipsZeroWeight(t *testing.T) {
	w := WeightTable{models.SignalWeather: 1.0, models.SignalFlights: 0}
	got := w.Score(map[models.SignalKey]models.Signal{
		models.SignalWeather: sig(60),
		models.SignalFlights: sig(100),
	})
	assert.Equal(t, 60, got)

	assert.Equal(t, 0, w.Score(map[models.SignalKey]models.Signal{models.SignalFlights: sig(100)}))
}

func TestScoreRangeAndIdempotence(t *testing.T) {
	w := DefaultWeights()
	scores := []int{0, 1, 33, 50, 67, 99, 100}
	for _, a := range scores {
		for _, b := range scores {
			for _, c := range scores {
				in := map[models.SignalKey]models.Signal{
					models.SignalWeather:  sig(a),
					models.SignalHolidays: sig(b),
					models.SignalFlights:  sig(c),
				}
				got := w.Score(in)
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
				assert.Equal(t, got, w.Score(in))
			}
		}
	}
}

func TestScoreAllHundredsIsHundred(t *testing.T) {
	in := map[models.SignalKey]models.Signal{}
	for _, k := range models.AllSignalKeys {
		in[k] = sig(100)
	}
	assert.Equal(t, 100, DefaultWeights().Score(in))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate(models.AllSignalKeys))
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)

	err := DefaultWeights().Validate(append([]models.SignalKey{"visa"}, models.AllSignalKeys...))
	assert.ErrorIs(t, err, ErrKeyMismatch)

	err = DefaultWeights().Validate(models.AllSignalKeys[:4])
	assert.ErrorIs(t, err, ErrKeyMismatch)

	w := DefaultWeights()
	w[models.SignalFlights] = 0.2
	assert.ErrorIs(t, w.Validate(models.AllSignalKeys), ErrWeightSum)

	w = DefaultWeights()
	w[models.SignalFlights] = -0.1
	w[models.SignalWeather] = 0.5
	assert.ErrorIs(t, w.Validate(models.AllSignalKeys), ErrNegativeWeight)
}

func TestFeasibility(t *testing.T) {
	assert.Equal(t, models.FeasibilityHigh, Feasibility(80))
	assert.Equal(t, models.FeasibilityHigh, Feasibility(100))
	assert.Equal(t, models.FeasibilityMedium, Feasibility(60))
	assert.Equal(t, models.FeasibilityMedium, Feasibility(79))
	assert.Equal(t, models.FeasibilityLow, Feasibility(59))
	assert.Equal(t, models.FeasibilityLow, Feasibility(0))
}
