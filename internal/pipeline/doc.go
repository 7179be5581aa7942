// Package pipeline fans independent jobs out to a bounded set of workers and
// hands the results back in input order.
package pipeline
