// Package cli implements the enimda command line tool.
//
//	enimda scan photo.jpg poster.gif
//	enimda crop --fast=false photo.jpg -o photo-cropped.png
//	enimda outline --color '#00FF00' photo.jpg -o photo-outlined.png
//
// Scan tuning flags are persistent and override the configuration file
// given by --config or ENIMDA_CONFIG.
package cli
