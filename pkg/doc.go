// Package pkg provides the core libraries for capillary X-ray absorption
// (muR) calculations.
//
// # Overview
//
// Given a chemical formula, a capillary radius, a sample density or packing
// fraction and a wavelength or energy, the libraries compute the product of
// the linear attenuation coefficient and the radius (muR) together with the
// per-element anomalous scattering factors behind it. The pkg directory is
// organized into three main areas:
//
//  1. Domain logic: [formula], [atomdata], [spectrum], [fprime], [density]
//     and [absorb]
//  2. Infrastructure: [cache], [observability], [errors] and [buildinfo]
//  3. Orchestration and output: [pipeline] and [sink]
//
// # Architecture
//
// The typical data flow:
//
//	Request (formula, radius, spectrum, density)
//	         ↓
//	    [formula] package (parse and normalize)
//	         ↓
//	    [density] package (measured or estimated from packing fraction)
//	         ↓
//	    [absorb] package (f', f'' per element, muR over the valid range)
//	         ↓
//	    [sink] package (JSON, CSV, XLSX, PDF)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/absorb/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Request{
//	    Formula: "YBa2Cu3O6.5",
//	    Radius:  0.4,
//	    Spectrum: 0.41,
//	    Density: 0.5,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("muR = %.3f\n", res.Absorption.Requested.MuR)
//
// # Packages
//
//   - [formula]: element/count parsing with nested groups
//   - [atomdata]: element constants and Cromer-Liberman orbital tables
//   - [spectrum]: wavelength/energy conversion and validity ranges
//   - [fprime]: anomalous scattering factors f' and f''
//   - [density]: measured density or packing-fraction estimate
//   - [absorb]: muR at a point and sampled across a range
//   - [pipeline]: validated requests, caching and execution
//   - [sink]: result export
//   - [cache], [observability], [errors], [buildinfo]: supporting infrastructure
package pkg
