// Package cleanup collects teardown jobs (pool closes, flushes) during
// wiring and runs them on shutdown, last registered first.
package cleanup

import "log"

type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs every registered job in reverse registration order, so
// dependents shut down before what they depend on. Failures are logged
// and don't stop the remaining jobs.
func CleanUp() {
	for i := len(jobs) - 1; i >= 0; i-- {
		j := jobs[i]
		log.Printf("cleanup: running %s", j.Name)
		if err := j.F(); err != nil {
			log.Printf("cleanup: %s failed: %v", j.Name, err)
		}
	}
	jobs = nil
}
