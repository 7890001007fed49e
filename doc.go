// Package kernsim is a pedagogical kernel-services simulator: a first-fit
// memory pool over a pre-reserved buffer, an asynchronous device driver with
// a bounded request queue and a single worker, and an interactive shell that
// drives both.
package kernsim
