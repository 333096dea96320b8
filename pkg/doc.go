// Package pkg provides the core libraries for Cloudgram diagram generation.
//
// # Overview
//
// Cloudgram turns declarative architecture descriptions (icon nodes, nested
// clusters, styled edges) into diagram images. The pkg directory is organized
// into these areas:
//
//  1. [diagram] - The diagram model (nodes, clusters, edges) and DOT emission
//  2. [icons] - The icon registry (provider/category/name keys and styling)
//  3. [providers] - Typed node constructors per provider (aws, onprem, programming)
//  4. [manifest] - TOML and HCL manifest loading
//  5. [render] - Graphviz layout and image encoding
//  6. [cache] - Content-addressed render artifact caching
//
// # Architecture
//
// The typical data flow through Cloudgram:
//
//	Manifest file or library calls
//	         ↓
//	    [diagram] package (containment tree + edge list)
//	         ↓
//	    [diagram/dot] package (deterministic DOT emission)
//	         ↓
//	    [render] package (Graphviz layout)
//	         ↓
//	    PNG/SVG/PDF/DOT output
//
// # Quick Start
//
//	d, _ := diagram.New("Web Stack")
//	web := aws.EC2("Web Server")
//	db := aws.EC2("Database")
//	_ = d.Add(web, db)
//	_, _ = d.Connect(web, db, diagram.Label("SQL"))
//	data, _ := render.Render(ctx, d, render.FormatPNG, render.Options{})
package pkg
