// Package config loads geometry-validation thresholds and check toggles
// from a YAML file via viper, with pflag-bound command-line overrides
// taking precedence — the conventional spf13 configuration-layering
// pattern.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

// Config is the fully-resolved set of inputs to one Validate call.
type Config struct {
	Criteria geovalidate.GeometryCriteria
	Checks   geovalidate.CheckConfig
}

// Load reads configFile (if non-empty) into viper, then overlays any
// flags the caller has explicitly set on flags, returning the resolved
// Config. A missing configFile is not an error: defaults apply.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	criteria := geovalidate.DefaultGeometryCriteria()
	criteria.RingClosureTolerance = v.GetFloat64("ring.closure_tolerance")
	criteria.MinLineLength = v.GetFloat64("cardinality.min_line_length")
	criteria.MinPolygonArea = v.GetFloat64("cardinality.min_polygon_area")
	criteria.OverlapTolerance = v.GetFloat64("overlap.tolerance")
	criteria.SliverArea = v.GetFloat64("sliver.max_area")
	criteria.SliverShapeIndex = v.GetFloat64("sliver.shape_index")
	criteria.SliverElongation = v.GetFloat64("sliver.elongation")
	criteria.SpikeAngleThresholdDegrees = v.GetFloat64("spike.angle_threshold_deg")
	criteria.NetworkSearchDistance = v.GetFloat64("network.search_distance")

	// Check toggles accept "Y"/"N" as well as plain booleans.
	for _, key := range v.AllKeys() {
		if !strings.HasPrefix(key, "checks.") {
			continue
		}
		if b, err := geovalidate.ParseYN(v.GetString(key)); err == nil {
			v.Set(key, b)
		}
	}

	checks := geovalidate.CheckConfig{
		Duplicate:         v.GetBool("checks.duplicate"),
		Overlap:           v.GetBool("checks.overlap"),
		SelfIntersection:  v.GetBool("checks.self_intersection"),
		SelfOverlap:       v.GetBool("checks.self_overlap"),
		PolygonInPolygon:  v.GetBool("checks.polygon_in_polygon"),
		ShortObject:       v.GetBool("checks.short_object"),
		SmallArea:         v.GetBool("checks.small_area"),
		MinPoints:         v.GetBool("checks.min_points"),
		Sliver:            v.GetBool("checks.sliver"),
		Spikes:            v.GetBool("checks.spikes"),
		Undershoot:        v.GetBool("checks.undershoot"),
		Overshoot:         v.GetBool("checks.overshoot"),
	}

	return Config{Criteria: criteria, Checks: checks}, nil
}

func setDefaults(v *viper.Viper) {
	d := geovalidate.DefaultGeometryCriteria()
	v.SetDefault("ring.closure_tolerance", d.RingClosureTolerance)
	v.SetDefault("cardinality.min_line_length", d.MinLineLength)
	v.SetDefault("cardinality.min_polygon_area", d.MinPolygonArea)
	v.SetDefault("overlap.tolerance", d.OverlapTolerance)
	v.SetDefault("sliver.max_area", d.SliverArea)
	v.SetDefault("sliver.shape_index", d.SliverShapeIndex)
	v.SetDefault("sliver.elongation", d.SliverElongation)
	v.SetDefault("spike.angle_threshold_deg", d.SpikeAngleThresholdDegrees)
	v.SetDefault("network.search_distance", d.NetworkSearchDistance)

	v.SetDefault("checks.duplicate", true)
	v.SetDefault("checks.overlap", true)
	v.SetDefault("checks.self_intersection", true)
	v.SetDefault("checks.self_overlap", true)
	v.SetDefault("checks.polygon_in_polygon", true)
	v.SetDefault("checks.short_object", true)
	v.SetDefault("checks.small_area", true)
	v.SetDefault("checks.min_points", true)
	v.SetDefault("checks.sliver", true)
	v.SetDefault("checks.spikes", true)
	v.SetDefault("checks.undershoot", true)
	v.SetDefault("checks.overshoot", true)
}
