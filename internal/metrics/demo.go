package metrics

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"
)

// DemoProvider generates plausible campaign metrics so rules can be
// exercised without any ad account connected. Value ranges are wide
// enough that most thresholds trigger within a few runs.
type DemoProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewDemoProvider seeds the generator from the clock. Tests pass a fixed
// seed through NewDemoProviderWithSeed for deterministic snapshots.
func NewDemoProvider() *DemoProvider {
	return NewDemoProviderWithSeed(time.Now().UnixNano())
}

func NewDemoProviderWithSeed(seed int64) *DemoProvider {
	return &DemoProvider{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (p *DemoProvider) RequiresAccount() bool { return false }

// Fetch produces a synthetic snapshot. cpc and roas fall in [0.5, 5.5),
// ctr in [0.5, 3.5), all rounded to two decimals.
func (p *DemoProvider) Fetch(_ context.Context, platform domain.Platform, _ ads.Credentials, _ Window) (Snapshot, error) {
	p.mu.Lock()
	campaignID := fmt.Sprintf("cmp_%d", p.rng.Intn(10000))
	cpc := round2(p.rng.Float64()*5 + 0.5)
	roas := round2(p.rng.Float64()*5 + 0.5)
	ctr := round2(p.rng.Float64()*3 + 0.5)
	p.mu.Unlock()

	return Snapshot{
		Platform:     platform,
		CampaignID:   campaignID,
		CampaignName: fmt.Sprintf("Campanha Mock %s - %s", platform, p.now().Format("15:04")),
		Values: map[string]float64{
			"cpc":  cpc,
			"roas": roas,
			"ctr":  ctr,
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
