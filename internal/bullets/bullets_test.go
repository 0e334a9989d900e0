package bullets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	text := `Jane Doe
EXPERIENCE
• Built the billing service
  - Led a team of four
* Cut costs by 20%
1. Shipped the mobile app
2) not numbered with a dot
-
plain line`

	got := Extract(text)
	assert.Equal(t, []string{
		"Built the billing service",
		"Led a team of four",
		"Cut costs by 20%",
		"1. Shipped the mobile app",
		"",
	}, got)
}

func TestExtractCapsAtTen(t *testing.T) {
	text := strings.Repeat("- item\n", 15)
	assert.Len(t, Extract(text), MaxBullets)
}

func TestExtractEmpty(t *testing.T) {
	assert.Equal(t, []string{}, Extract(""))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain sentence passes through",
			raw:  "Engineered a billing service that cut invoice errors by 35%.",
			want: "Engineered a billing service that cut invoice errors by 35%.",
		},
		{
			name: "markdown removed",
			raw:  "**Engineered** a *billing* service for 2M users",
			want: "Engineered a billing service for 2M users",
		},
		{
			name: "label before colon dropped",
			raw:  "Improved Version: Spearheaded migration to Kubernetes saving 40% in hosting",
			want: "Spearheaded migration to Kubernetes saving 40% in hosting",
		},
		{
			name: "explanations dropped",
			raw:  "Spearheaded a zero downtime database migration\nThis improved bullet shows impact\nShows leadership",
			want: "Spearheaded a zero downtime database migration",
		},
		{
			name: "short lines dropped",
			raw:  "Did it\nOrchestrated quarterly releases across six teams",
			want: "Orchestrated quarterly releases across six teams",
		},
		{
			name: "numbered lines dropped",
			raw:  "1. Orchestrated quarterly releases\nDelivered analytics platform used by 300 analysts",
			want: "Delivered analytics platform used by 300 analysts",
		},
		{
			name: "dashes removed inside words",
			raw:  "Built real-time dashboards for operations",
			want: "Built realtime dashboards for operations",
		},
		{
			name: "nothing substantial",
			raw:  "**",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

type fakeRewriter struct {
	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	fail     string
	reply    func(bullet string) string
}

func (f *fakeRewriter) RewriteBullet(ctx context.Context, bullet, role string) (string, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if bullet == f.fail {
		return "", errors.New("model unavailable")
	}
	if f.reply != nil {
		return f.reply(bullet), nil
	}
	return fmt.Sprintf("**Improved** %s for a %s role", bullet, role), nil
}

func TestImproverKeepsOrder(t *testing.T) {
	rw := &fakeRewriter{delay: 5 * time.Millisecond}
	im := NewImprover(rw, 3)

	bullets := []string{"built api", "fixed bugs", "wrote docs", "ran standups", "owned oncall"}
	got, err := im.Improve(context.Background(), bullets, "backend")
	require.NoError(t, err)

	require.Len(t, got, len(bullets))
	for i, b := range bullets {
		assert.Equal(t, b, got[i].Original)
		assert.Equal(t, "Improved "+b+" for a backend role", got[i].Improved)
	}
	assert.Equal(t, int32(len(bullets)), rw.calls.Load())
	assert.LessOrEqual(t, rw.peak.Load(), int32(3))
}

func TestImproverFallsBackToOriginal(t *testing.T) {
	rw := &fakeRewriter{reply: func(string) string { return "* ok" }}

	got, err := NewImprover(rw, 0).Improve(context.Background(), []string{"Managed budget of $2M"}, "finance")
	require.NoError(t, err)
	assert.Equal(t, "Managed budget of $2M", got[0].Improved)
}

func TestImproverReturnsFirstError(t *testing.T) {
	rw := &fakeRewriter{delay: time.Millisecond, fail: "fixed bugs"}

	_, err := NewImprover(rw, 2).Improve(context.Background(), []string{"built api", "fixed bugs", "wrote docs"}, "backend")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bullet 2")
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestImproverHonoursCancellation(t *testing.T) {
	rw := &fakeRewriter{delay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewImprover(rw, 1).Improve(ctx, []string{"built api"}, "backend")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImproverEmptyInput(t *testing.T) {
	got, err := NewImprover(&fakeRewriter{}, 2).Improve(context.Background(), nil, "backend")
	require.NoError(t, err)
	assert.Empty(t, got)
}
