package main

// / The version number of the current rpncalc release.
const kRpncalcVersion = "1.1.0"
