// Package vector flattens CAD entities into raw line segments for the
// cleaning and boundary detection stages.
//
// Lines pass through directly, polylines become consecutive edges, arcs
// are linearized into short chords, and splines are approximated by
// their control polygon. Dimension entities never contribute geometry;
// their values, labels and orientation are collected as height evidence
// for wall extraction. Zero-length geometry is dropped at the door.
package vector
