package resources

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// byStrategy answers with the records registered for a strategy name and Empty otherwise.
func byStrategy(calls *atomic.Int32, records map[string][]Record) Provider {
	return ProviderFunc(func(ctx context.Context, st Strategy) (Response, error) {
		calls.Add(1)
		if recs, ok := records[st.Name]; ok {
			return Structured{Records: recs}, nil
		}
		return Empty{}, nil
	})
}

func TestRankedResourcesExcludesShortForm(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	svc := NewService(testConfig(), map[string]Provider{
		ProviderYouTube: byStrategy(&calls, map[string][]Record{
			"deep-tutorial": {
				{Title: "Smart Irrigation Tutorial", URL: vid1, DurationSeconds: 600},
				{Title: "Smart Irrigation Tutorial #shorts", URL: "https://www.youtube.com/shorts/abcdefghij2", DurationSeconds: 50},
				{Title: "Smart Irrigation Tutorial Full Build", URL: vid3, DurationSeconds: 1200},
			},
		}),
	}, nil)

	rep, err := svc.Rank(context.Background(), Request{
		Subject: "Smart Irrigation System",
		Domain:  "Electrical Engineering",
		Kind:    KindVideo,
	})
	require.NoError(t, err)
	assert.False(t, rep.Fallback)
	assert.Equal(t, []string{vid3, vid1}, rep.Links)
	require.Len(t, rep.Candidates, 2)
	assert.Greater(t, rep.Candidates[0].Score, rep.Candidates[1].Score)
	assert.NotEmpty(t, rep.RunID)
	assert.Len(t, rep.Attempts, len(rep.Strategies))
	assert.Equal(t, int32(len(rep.Strategies)), calls.Load())
}

func TestRankedResourcesAllTimeouts(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.ProviderTimeout = 20 * time.Millisecond
	slow := ProviderFunc(func(ctx context.Context, st Strategy) (Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	svc := NewService(cfg, map[string]Provider{ProviderYouTube: slow, ProviderGitHub: slow}, nil)

	for _, kind := range []Kind{KindVideo, KindRepository} {
		t.Run(string(kind), func(t *testing.T) {
			req := Request{Subject: "Smart Irrigation System", Domain: "Electrical Engineering", Kind: kind}
			got, err := svc.RankedResources(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, SearchURLs(req.Subject, req.Domain, kind), got)

			rep, err := svc.Rank(context.Background(), req)
			require.NoError(t, err)
			assert.True(t, rep.Fallback)
			for _, a := range rep.Attempts {
				require.NotEmpty(t, a.Reasons, "attempt %s should record its failure", a.Strategy)
				assert.Contains(t, a.Reasons[0], ErrProviderTimeout.Error())
			}
		})
	}
}

func TestRankedResourcesFirstSeenDuplicate(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	svc := NewService(testConfig(), map[string]Provider{
		ProviderYouTube: byStrategy(&calls, map[string][]Record{
			"deep-tutorial": {
				{Title: "Smart Irrigation Tutorial", URL: vid1, DurationSeconds: 300},
			},
			"build-guide": {
				{Title: "Complete Smart Irrigation System Build Step By Step", URL: "https://youtu.be/abcdefghij1", DurationSeconds: 3000},
				{Title: "Smart Irrigation System Build Guide", URL: vid2, DurationSeconds: 900},
			},
		}),
	}, nil)

	rep, err := svc.Rank(context.Background(), Request{Subject: "Smart Irrigation System"})
	require.NoError(t, err)

	var matches []Candidate
	for _, c := range rep.Candidates {
		if c.SourceID == vid1 {
			matches = append(matches, c)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "deep-tutorial", matches[0].Origin)
	assert.Equal(t, "Smart Irrigation Tutorial", matches[0].Title)
	assert.Equal(t, 38, matches[0].Score)
}

func TestRankedResourcesInvalidSubject(t *testing.T) {
	var calls atomic.Int32
	svc := NewService(testConfig(), map[string]Provider{ProviderYouTube: byStrategy(&calls, nil)}, nil)

	for _, subject := range []string{"", "   ", "\t\n"} {
		_, err := svc.RankedResources(context.Background(), Request{Subject: subject})
		require.ErrorIs(t, err, ErrInvalidSubject)
	}
	assert.Zero(t, calls.Load(), "no provider call for invalid input")
}

func TestRankedResourcesRespectsLimits(t *testing.T) {
	defer goleak.VerifyNone(t)

	var recs []Record
	for i := range 12 {
		recs = append(recs, Record{
			Title:           fmt.Sprintf("Smart Irrigation Tutorial part %d", i),
			URL:             fmt.Sprintf("https://github.com/user/smart-irrigation-%02d", i),
			Popularity:      200,
			DurationSeconds: 0,
		})
	}
	var calls atomic.Int32
	svc := NewService(testConfig(), map[string]Provider{
		ProviderGitHub: byStrategy(&calls, map[string][]Record{"repo-implementation": recs}),
	}, nil)

	rep, err := svc.Rank(context.Background(), Request{Subject: "smart irrigation", Kind: KindRepository})
	require.NoError(t, err)
	assert.Len(t, rep.Candidates, 8)
	assert.Len(t, rep.Links, 5)
}

func TestRankCachesReports(t *testing.T) {
	cache := engine.NewCache(nil, time.Minute, 100, time.Hour)
	defer cache.Close()

	var calls atomic.Int32
	svc := NewService(testConfig(), map[string]Provider{
		ProviderYouTube: byStrategy(&calls, map[string][]Record{
			"deep-tutorial": {{Title: "Smart Irrigation Tutorial", URL: vid1, DurationSeconds: 600}},
		}),
	}, cache)

	req := Request{Subject: "Smart Irrigation System", Aux: map[string]string{"b": "2", "a": "1"}}
	first, err := svc.Rank(context.Background(), req)
	require.NoError(t, err)
	n := calls.Load()

	second, err := svc.Rank(context.Background(), Request{Subject: " smart irrigation system ", Aux: map[string]string{"a": "1", "b": "2"}})
	require.NoError(t, err)
	assert.Equal(t, n, calls.Load(), "cached run should not call providers")
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, first.Links, second.Links)
}

func TestStrategiesAndFallbackRejectBlankSubject(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)
	_, err := svc.Strategies(Request{Subject: " "})
	assert.ErrorIs(t, err, ErrInvalidSubject)
	_, err = svc.Fallback(context.Background(), "", "", KindVideo)
	assert.ErrorIs(t, err, ErrInvalidSubject)

	links, err := svc.Fallback(context.Background(), "robot arm", "", KindVideo)
	require.NoError(t, err)
	assert.Len(t, links, 4)
}
