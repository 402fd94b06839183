package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when a tier or metric name is not recognised.
var ErrUnknownValue = errors.New("unknown value")

// Tier is a medal category. Total is derived from the other three.
type Tier string

// Medal tiers.
const (
	Gold   Tier = "Gold"
	Silver Tier = "Silver"
	Bronze Tier = "Bronze"
	Total  Tier = "Total"
)

// Tiers lists the selectable tiers in display order.
var Tiers = []Tier{Gold, Silver, Bronze, Total}

// MedalTiers lists the three awarded tiers.
var MedalTiers = []Tier{Gold, Silver, Bronze}

// ParseTier accepts a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("tier %q: %w", s, ErrUnknownValue)
}

// Metric is a column of the economy/medal join usable in a correlation.
type Metric string

// Correlation metrics, named after the source columns.
const (
	MetricGDP         Metric = "GDP"
	MetricGDPWorld    Metric = "GDP_WorldPercent"
	MetricGold        Metric = "Gold"
	MetricTotalMedals Metric = "Total_Medals"
)

// Metrics lists every correlation metric in display order.
var Metrics = []Metric{MetricGDP, MetricGDPWorld, MetricGold, MetricTotalMedals}

// ParseMetric accepts a metric name case-insensitively.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("metric %q: %w", s, ErrUnknownValue)
}
