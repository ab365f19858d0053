package service

import (
	"fmt"
	"math"
	"strings"
)

// The API stores body weight in pounds, matching the feet/inches height
// fields.
const APIWeightUnit = "lb"

var massToGrams = map[string]float64{
	"kg":  1000,
	"lb":  453.59237,
	"lbs": 453.59237,
}

// ConvertWeight converts value between kg and lb. An empty unit means lb.
func ConvertWeight(value float64, fromUnit, toUnit string) (float64, error) {
	from, err := resolveMassUnit(fromUnit)
	if err != nil {
		return 0, err
	}
	to, err := resolveMassUnit(toUnit)
	if err != nil {
		return 0, err
	}
	if from == to {
		return value, nil
	}
	return roundTo(value*from/to, 2), nil
}

func resolveMassUnit(unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = APIWeightUnit
	}
	g, ok := massToGrams[u]
	if !ok {
		return 0, fmt.Errorf("unsupported weight unit %q (expected kg|lb)", unit)
	}
	return g, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
