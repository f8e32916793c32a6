package store

import (
	"encoding/json"
	"math"
	"os"
	"sort"
	"strconv"

	"claudeboard/log"
)

// Stats is the chart-ready reshaping of the externally maintained
// stats-cache.json. Nothing here is computed from transcripts; the cache is
// the only input and an unreadable cache yields an all-zero snapshot.
type Stats struct {
	Summary        StatsSummary     `json:"summary"`
	DailyActivity  []DailyActivity  `json:"dailyActivity"`
	ModelUsage     []ModelUsage     `json:"modelUsage"`
	HourlyActivity []HourlyActivity `json:"hourlyActivity"`
	Insights       Insights         `json:"insights"`
}

type StatsSummary struct {
	TotalSessions          int   `json:"totalSessions"`
	TotalMessages          int   `json:"totalMessages"`
	TotalToolCalls         int   `json:"totalToolCalls"`
	TotalTokens            int64 `json:"totalTokens"`
	AvgMessagesPerSession  int   `json:"avgMessagesPerSession"`
	AvgToolCallsPerSession int   `json:"avgToolCallsPerSession"`
}

type DailyActivity struct {
	Date      string `json:"date"`
	Messages  int    `json:"messages"`
	ToolCalls int    `json:"toolCalls"`
	Sessions  int    `json:"sessions"`
}

// ModelUsage percentages are rounded independently per model, so the column
// may not sum to exactly 100. That drift is accepted output, not corrected.
type ModelUsage struct {
	Model      string `json:"model"`
	Tokens     int64  `json:"tokens"`
	Percentage int    `json:"percentage"`
}

type HourlyActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Insights are max-by-field reductions over the raw cache; nil when the
// backing collection is empty.
type Insights struct {
	MostActiveDay *DayInsight  `json:"mostActiveDay"`
	PeakHour      *HourInsight `json:"peakHour"`
}

type DayInsight struct {
	Date     string `json:"date"`
	Messages int    `json:"messages"`
}

type HourInsight struct {
	Hour     int `json:"hour"`
	Sessions int `json:"sessions"`
}

// rawStatsCache mirrors the v2 cache file. Every field is optional; absent
// numbers default to zero and absent collections to empty.
type rawStatsCache struct {
	Version       int                      `json:"version"`
	TotalSessions int                      `json:"totalSessions"`
	TotalMessages int                      `json:"totalMessages"`
	DailyActivity []rawDailyActivity       `json:"dailyActivity"`
	ModelUsage    map[string]rawModelUsage `json:"modelUsage"`
	HourCounts    map[string]int           `json:"hourCounts"`
}

type rawDailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

type rawModelUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

func (m rawModelUsage) total() int64 {
	return m.InputTokens + m.OutputTokens + m.CacheReadInputTokens + m.CacheCreationInputTokens
}

const dailyActivityWindow = 30

// GetStats reshapes the stats cache into the presentation model. A missing or
// malformed cache is treated as absent and produces the zero snapshot.
func (s *Store) GetStats() Stats {
	data, err := os.ReadFile(s.paths.StatsCache)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("file", s.paths.StatsCache).Msg("stats cache unreadable")
		}
		return emptyStats()
	}
	var raw rawStatsCache
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("file", s.paths.StatsCache).Msg("malformed stats cache, returning empty snapshot")
		return emptyStats()
	}

	// Daily series: chronological, truncated to the trailing window.
	daily := make([]DailyActivity, 0, len(raw.DailyActivity))
	totalToolCalls := 0
	for _, item := range raw.DailyActivity {
		daily = append(daily, DailyActivity{
			Date:      item.Date,
			Messages:  item.MessageCount,
			ToolCalls: item.ToolCallCount,
			Sessions:  item.SessionCount,
		})
		totalToolCalls += item.ToolCallCount
	}
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	if len(daily) > dailyActivityWindow {
		daily = daily[len(daily)-dailyActivityWindow:]
	}

	// Model usage: share of total tokens, rounded per model.
	models := make([]string, 0, len(raw.ModelUsage))
	var totalTokens int64
	for model, usage := range raw.ModelUsage {
		models = append(models, model)
		totalTokens += usage.total()
	}
	sort.Strings(models)

	modelUsage := make([]ModelUsage, 0, len(models))
	for _, model := range models {
		tokens := raw.ModelUsage[model].total()
		percentage := 0
		if totalTokens > 0 {
			percentage = int(math.Round(float64(tokens) / float64(totalTokens) * 100))
		}
		modelUsage = append(modelUsage, ModelUsage{
			Model:      model,
			Tokens:     tokens,
			Percentage: percentage,
		})
	}

	// Hourly histogram: always 24 slots, absent hours count zero.
	hourly := make([]HourlyActivity, 24)
	for hour := range hourly {
		hourly[hour] = HourlyActivity{
			Hour:  hour,
			Count: raw.HourCounts[strconv.Itoa(hour)],
		}
	}

	avgMessages := 0
	avgToolCalls := 0
	if raw.TotalSessions > 0 {
		avgMessages = int(math.Round(float64(raw.TotalMessages) / float64(raw.TotalSessions)))
		avgToolCalls = int(math.Round(float64(totalToolCalls) / float64(raw.TotalSessions)))
	}

	return Stats{
		Summary: StatsSummary{
			TotalSessions:          raw.TotalSessions,
			TotalMessages:          raw.TotalMessages,
			TotalToolCalls:         totalToolCalls,
			TotalTokens:            totalTokens,
			AvgMessagesPerSession:  avgMessages,
			AvgToolCallsPerSession: avgToolCalls,
		},
		DailyActivity:  daily,
		ModelUsage:     modelUsage,
		HourlyActivity: hourly,
		Insights: Insights{
			MostActiveDay: mostActiveDay(raw.DailyActivity),
			PeakHour:      peakHour(raw.HourCounts),
		},
	}
}

// mostActiveDay reduces over the raw (non-truncated) series; first maximum
// wins on ties.
func mostActiveDay(daily []rawDailyActivity) *DayInsight {
	if len(daily) == 0 {
		return nil
	}
	best := daily[0]
	for _, item := range daily[1:] {
		if item.MessageCount > best.MessageCount {
			best = item
		}
	}
	return &DayInsight{Date: best.Date, Messages: best.MessageCount}
}

// peakHour scans hour keys in ascending numeric order so ties resolve to the
// earliest hour; unparsable keys are skipped.
func peakHour(hourCounts map[string]int) *HourInsight {
	hours := make([]int, 0, len(hourCounts))
	for key := range hourCounts {
		if hour, err := strconv.Atoi(key); err == nil {
			hours = append(hours, hour)
		}
	}
	if len(hours) == 0 {
		return nil
	}
	sort.Ints(hours)

	best := HourInsight{Hour: hours[0], Sessions: hourCounts[strconv.Itoa(hours[0])]}
	for _, hour := range hours[1:] {
		if count := hourCounts[strconv.Itoa(hour)]; count > best.Sessions {
			best = HourInsight{Hour: hour, Sessions: count}
		}
	}
	return &best
}

func emptyStats() Stats {
	hourly := make([]HourlyActivity, 24)
	for hour := range hourly {
		hourly[hour] = HourlyActivity{Hour: hour}
	}
	return Stats{
		DailyActivity:  []DailyActivity{},
		ModelUsage:     []ModelUsage{},
		HourlyActivity: hourly,
	}
}
