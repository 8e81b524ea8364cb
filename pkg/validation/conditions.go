package validation

import (
	"fmt"
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
)

// ValidateConditions checks design temperatures before a heat loss is
// calculated for them.
func ValidateConditions(c climate.Conditions) *Report {
	r := NewReport()

	temps := []struct {
		path  string
		value float64
	}{
		{"externalDesignTemp", c.ExternalDesignTemp},
		{"internalDesignTemp", c.InternalDesignTemp},
		{"internalDesignTempBedroom", c.InternalDesignTempBedroom},
	}
	finite := true
	for _, tmp := range temps {
		if math.IsNaN(tmp.value) || math.IsInf(tmp.value, 0) {
			finite = false
			r.AddError(Result{
				Level:       LevelThermal,
				Message:     fmt.Sprintf("%s must be a finite temperature", tmp.path),
				Path:        tmp.path,
				ActualValue: fmt.Sprint(tmp.value),
			})
		}
	}
	if !finite {
		return r
	}

	for _, tmp := range temps[1:] {
		if tmp.value <= c.ExternalDesignTemp {
			r.AddError(Result{
				Level:        LevelThermal,
				Message:      fmt.Sprintf("%s (%.1f°C) must be above the external design temperature (%.1f°C)", tmp.path, tmp.value, c.ExternalDesignTemp),
				Path:         tmp.path,
				ActualValue:  tmp.value,
				ConflictWith: "externalDesignTemp",
			})
		}
		if tmp.value > 30 {
			r.AddWarning(Result{
				Level:       LevelThermal,
				Message:     fmt.Sprintf("%s of %.1f°C is unusually high", tmp.path, tmp.value),
				Path:        tmp.path,
				ActualValue: tmp.value,
				Expected:    "16-24",
			})
		}
	}
	if c.ExternalDesignTemp > 10 {
		r.AddWarning(Result{
			Level:       LevelThermal,
			Message:     fmt.Sprintf("external design temperature of %.1f°C is milder than any UK region", c.ExternalDesignTemp),
			Path:        "externalDesignTemp",
			ActualValue: c.ExternalDesignTemp,
			Expected:    "-6 to -2",
		})
	}
	return r
}
