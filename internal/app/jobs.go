package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	JobReloadCatalog = "reload_catalog"
	JobSweepSessions = "sweep_sessions"
)

var ErrJobNotFound = errors.New("job not found")

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type job struct {
	name    string
	spec    string
	entryID cron.EntryID
	run     func()
}

// JobInfo describes a scheduled job for the admin api.
type JobInfo struct {
	Name string    `json:"name"`
	Spec string    `json:"spec"`
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev"`
}

func (a *Application) initJob() error {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if spec := a.appConfig.Feed.RefreshCron; spec != "" {
		if err := a.addJob(JobReloadCatalog, spec, a.SchedReloadCatalogTask); err != nil {
			return err
		}
	}
	if err := a.addJob(JobSweepSessions, sessionSweep, a.SchedSweepSessionsTask); err != nil {
		return err
	}

	a.sched.Start()
	return nil
}

func (a *Application) addJob(name, spec string, run func()) error {
	id, err := a.sched.AddFunc(spec, run)
	if err != nil {
		return errors.Wrapf(err, "init job: %s %q", name, spec)
	}
	a.jobs = append(a.jobs, job{name: name, spec: spec, entryID: id, run: run})
	return nil
}

// Jobs lists the registered jobs with their next and previous run times.
func (a *Application) Jobs() []JobInfo {
	out := make([]JobInfo, 0, len(a.jobs))
	for _, j := range a.jobs {
		e := a.sched.Entry(j.entryID)
		out = append(out, JobInfo{Name: j.name, Spec: j.spec, Next: e.Next, Prev: e.Prev})
	}
	return out
}

// RunJob runs the named job on the worker pool without waiting for it.
func (a *Application) RunJob(name string) error {
	for _, j := range a.jobs {
		if j.name == name {
			return errors.Wrap(a.pool.Submit(j.run), "submit job")
		}
	}
	return errors.Wrap(ErrJobNotFound, name)
}

// SchedReloadCatalogTask reloads the product sheet
func (a *Application) SchedReloadCatalogTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	timeout := a.appConfig.Feed.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()
	_, _ = a.ReloadCatalog(ctx)
}

// SchedSweepSessionsTask drops idle visitor sessions
func (a *Application) SchedSweepSessionsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	idle := a.appConfig.Shop.SessionIdle
	if idle <= 0 {
		idle = 2 * time.Hour
	}
	a.sessions.Sweep(idle)
}
