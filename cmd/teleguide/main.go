package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	_ "github.com/teleguide/teleguide/providers/tvspielfilm"

	"github.com/teleguide/teleguide/dispatcher"
	"github.com/teleguide/teleguide/matcher"
	"github.com/teleguide/teleguide/models"
	"github.com/teleguide/teleguide/providers"
	"github.com/teleguide/teleguide/store"

	"github.com/sirupsen/logrus"
	"github.com/teleguide/teleguide/workers"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type app struct {
	Config   *Config
	Details  bool
	store    *store.StoreCSV
	filter   *matcher.ProgramFilter
	provider providers.Provider
	worker   *workers.WorkerPool
	dispatch *dispatcher.Dispatcher
}

// multiFlag collects the values of a repeatable command line flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {

	fmt.Printf("%s: %v, commit %v, built at %v\n", filepath.Base(os.Args[0]), version, commit, date)
	a := &app{}

	// trap Ctrl+C and call cancel on the context
	ctx, cancel := context.WithCancel(context.Background())
	breakChannel := make(chan os.Signal, 1)
	signal.Notify(breakChannel, os.Interrupt)

	defer func() {
		// Normal end... cleaning up
		signal.Stop(breakChannel)
		cancel()
	}()

	// waiting for interruption
	go func() {
		select {
		case <-breakChannel:
			cancel()
		case <-ctx.Done():
			return
		}
	}()

	cliConfig := &Config{}
	var configFile string
	var blockChannels, blockTitles, blockGenres, blockDivisions multiFlag

	flag.BoolVar(&cliConfig.Debug, "debug", false, "Debug mode.")
	flag.BoolVar(&cliConfig.Headless, "headless", false, "Headless mode. Progression bars are not displayed.")
	flag.BoolVar(&cliConfig.Service, "service", false, "Run as a service, refreshing the program on every pull interval.")
	flag.BoolVar(&a.Details, "details", false, "Fetch the description of every movie kept in the listing.")
	flag.StringVar(&configFile, "config", "config.json", "Configuration file name.")
	flag.StringVar(&cliConfig.Provider, "provider", "", "Listing provider to query.")
	flag.IntVar(&cliConfig.MaxTasks, "max-tasks", 0, "Maximum concurrent fetches at a time. 0 takes the configuration file value.")
	flag.Var(&blockChannels, "block-channel", "Hide this channel from the listing. Can be repeated.")
	flag.Var(&blockTitles, "block-title", "Hide movies with this title. Can be repeated.")
	flag.Var(&blockGenres, "block-genre", "Hide movies of this genre. Can be repeated.")
	flag.Var(&blockDivisions, "block-division", "Hide movies of this division. Can be repeated.")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetOutput(os.Stderr)

	a.Initialize(cliConfig, configFile)
	a.AddRules(blockChannels, blockTitles, blockGenres, blockDivisions)
	a.Run(ctx)
}

func (a *app) Initialize(c *Config, configFile string) {
	a.Config = ReadConfigOrGenerateDefault(configFile)

	// Command line values win over the configuration file
	if c.Debug {
		a.Config.Debug = true
	}
	if c.Headless {
		a.Config.Headless = true
	}
	if c.Service {
		a.Config.Service = true
	}
	if c.Provider != "" {
		a.Config.Provider = c.Provider
	}
	if c.MaxTasks > 0 {
		a.Config.MaxTasks = c.MaxTasks
	}

	// Check and normalize configuration file
	a.Config.Check()

	if a.Config.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	p, ok := providers.Get(a.Config.Provider)
	if !ok {
		logrus.WithField("provider", a.Config.Provider).Fatal("Unknown provider")
	}
	a.provider = p

	a.store = store.NewStoreCSV(a.Config.FilterFile)
	filter, err := a.store.GetFilter()
	if err != nil {
		logrus.WithError(err).Warn("Ignoring the unreadable filter file")
		filter = matcher.NewProgramFilter()
	}
	a.filter = filter
	a.dispatch = dispatcher.NewDispatcher()
}

// AddRules records the block rules given on the command line. The
// session filter always gets them, the filter file is updated best
// effort.
func (a *app) AddRules(channels, titles, genres, divisions []string) {
	count := 0
	for _, v := range channels {
		a.filter.Add(matcher.ByChannelName(v))
		count++
	}
	for _, v := range titles {
		a.filter.Add(matcher.ByTitle(v))
		count++
	}
	for _, v := range genres {
		a.filter.Add(matcher.ByGenre(v))
		count++
	}
	for _, v := range divisions {
		a.filter.Add(matcher.ByDivision(v))
		count++
	}
	if count == 0 {
		return
	}
	if err := a.store.SetFilter(a.filter); err != nil {
		logrus.WithError(err).Warn("Couldn't update the filter file")
		return
	}
	logrus.WithFields(logrus.Fields{
		"rules": count,
		"file":  a.Config.FilterFile,
	}).Info("Filter file updated")
}

func (a *app) Run(ctx context.Context) {

	a.worker = workers.New(ctx, a.Config.MaxTasks, a.Config.Debug)

	cancelLog := a.dispatch.Subscribe(func(m models.Message) {
		entry := logrus.WithField("when", m.When.Format("15:04:05"))
		switch m.Status {
		case models.StatusError:
			entry.Error(m.Text)
		case models.StatusWarning:
			entry.Warn(m.Text)
		default:
			entry.Info(m.Text)
		}
	})
	defer cancelLog()

	err := a.RefreshCycle(ctx)
	if err != nil && !a.Config.Service {
		a.worker.Stop()
		logrus.WithError(err).Fatal("Couldn't refresh the TV program")
	}

	if a.Config.Service {
		ticker := time.NewTicker(time.Duration(a.Config.PullInterval))
		defer ticker.Stop()
	serviceLoop:
		for {
			select {
			case <-ctx.Done():
				break serviceLoop
			case <-ticker.C:
				if err := a.RefreshCycle(ctx); err != nil {
					logrus.WithError(err).Error("Refresh failed, will retry on the next pull")
				}
			}
		}
	}

	a.worker.Stop()
	if a.Config.Debug {
		logrus.Debug("Workers stop confirmed")
	}
}

type programResult struct {
	program *models.Program
	err     error
}

// RefreshCycle pulls the whole evening program, hides the filtered
// entries and renders what remains.
func (a *app) RefreshCycle(ctx context.Context) error {
	p := a.provider.Clone()

	result := make(chan programResult, 1)
	accepted := a.worker.Submit(workers.NewRunAction("refresh "+p.Name(), func() error {
		program, err := p.GetProgram(ctx)
		result <- programResult{program: program, err: err}
		return nil
	}))
	if !accepted {
		return ctx.Err()
	}

	var r programResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case r = <-result:
	}
	if r.err != nil {
		a.dispatch.Publish(*models.NewMessage(fmt.Sprintf("[%s] Refresh failed: %v", p.Name(), r.err)).SetStatus(models.StatusError))
		return r.err
	}

	program := a.filter.Filter(r.program)
	a.dispatch.Publish(*models.NewMessage(fmt.Sprintf("[%s] %d movies on the air, %d hidden by the filter", p.Name(), program.Len(), r.program.Len()-program.Len())).SetStatus(models.StatusSuccess))

	if a.Details {
		a.EnrichProgram(ctx, p, program)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	a.Render(program)
	return nil
}

// EnrichProgram completes every movie with the description found on
// its detail page, fanned out on the worker pool.
func (a *app) EnrichProgram(ctx context.Context, p providers.Provider, program *models.Program) {
	var pc *mpb.Progress
	var bar *mpb.Bar
	if !a.Config.Headless {
		pc = mpb.NewWithContext(ctx, mpb.WithWidth(64))
		bar = pc.AddBar(int64(program.Len()),
			mpb.PrependDecorators(
				// simple name decorator
				decor.Name(left(p.Name(), 20), decor.WC{W: 20 + 1, C: decor.DidentRight}),
				decor.CountersNoUnit(" %3d/%3d", decor.WC{W: 5 + 1, C: decor.DidentRight}),
			))
	} else {
		logrus.WithFields(logrus.Fields{
			"provider": p.Name(),
			"movies":   program.Len(),
		}).Info("Fetching descriptions")
	}

	wg := sync.WaitGroup{}
enrichLoop:
	for i := 0; i < program.Len(); i++ {
		select {
		case <-ctx.Done():
			break enrichLoop
		default:
			i := i
			movie := program.At(i).Movie
			wg.Add(1)
			accepted := a.worker.Submit(workers.NewRunAction("details "+movie.Title, func() error {
				defer wg.Done()
				program.SetMovieAt(i, p.GetMoreInformation(ctx, movie))
				if bar != nil {
					bar.Increment()
				}
				return nil
			}))
			if !accepted {
				wg.Done()
				break enrichLoop
			}
		}
	}
	if ctx.Err() == nil {
		wg.Wait()
	}
	if bar != nil {
		bar.SetTotal(int64(program.Len()), true)
		pc.Wait()
	}
}

// Render prints the program as a table, one line per movie. With
// details on, the fetched descriptions follow the table.
func (a *app) Render(program *models.Program) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tTITLE\tYEAR\tGENRE\tDIVISION")
	for _, e := range program.Entries() {
		year := ""
		if y, ok := e.Movie.Year.Get(); ok {
			year = strconv.Itoa(y)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Channel.Name,
			e.Movie.Title,
			year,
			e.Movie.Genre.Or(""),
			e.Movie.Division.Or(""),
		)
	}
	w.Flush()

	if !a.Details {
		return
	}
	for _, e := range program.Entries() {
		desc, ok := e.Movie.Description.Get()
		if !ok || desc == "" {
			continue
		}
		fmt.Printf("\n%s, %s\n%s", e.Movie.Title, e.Channel.Name, desc)
	}
}

func left(s string, l int) string {
	if len(s) > l {
		return s[:l]
	}
	return s
}
