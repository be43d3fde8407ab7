package core

import "math"

// Physical constants in SI units.
const (
	GravitationalConstant = 6.67430e-11 // m^3 kg^-1 s^-2
	SecondsPerDay         = 86400.0
	SolarMass             = 1.98847e30 // kg
	SolarRadius           = 6.957e8    // m
)

// KeplerAOverR returns the semi-major axis in stellar radii implied by
// Kepler's third law:
//
//	a/R = (G P^2 M / (4 pi^2 R^3))^(1/3)
//
// period is in days, mass in solar masses and radius in solar radii.
// The planet mass is neglected. Returns NaN if any input is NaN or the
// radicand is negative.
func KeplerAOverR(period, stellarMass, stellarRadius float64) float64 {
	p := period * SecondsPerDay
	m := stellarMass * SolarMass
	r := stellarRadius * SolarRadius
	return math.Pow(GravitationalConstant*p*p*m/(4*math.Pi*math.Pi*r*r*r), 1.0/3.0)
}

// needsAOverRFallback reports whether an archive a/R value must be replaced.
func needsAOverRFallback(aOverR float64) bool {
	return !isFinite(aOverR) || aOverR == 0
}
