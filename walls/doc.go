// Package walls turns a boundary loop into a wall plan: per-wall lengths
// and directions, the total perimeter, and a building height when the
// drawing provides one.
//
// Every output is in millimeters regardless of the source unit. Heights
// are resolved from the most reliable evidence available, in order: a 3D
// elevation range in the source geometry, a vertical dimension labeled as
// a height (軒高, 高さ, GL, H= and similar, matched after width
// folding), or any vertical dimension in a plausible building range. When
// all of those fail the height is reported as unknown with an explanatory
// note; it is never guessed.
package walls
