package fol

// Version is the current release of the GoFOL library. The package follows
// semantic versioning; breaking API changes bump the major component.
const Version = "0.1.0"
