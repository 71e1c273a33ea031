package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"scrapecloud/internal/config"
	"scrapecloud/internal/domain/job"
	"scrapecloud/internal/endpoint"
	"scrapecloud/internal/endpoint/activity"
	"scrapecloud/internal/endpoint/base"
	"scrapecloud/internal/endpoint/items"
	"scrapecloud/internal/endpoint/jobs"
	"scrapecloud/internal/params"
)

func main() {
	cfg := config.Load()
	transport := base.NewHTTPClient(cfg.API.BaseURL, cfg.API.Key, cfg.HTTP.TimeoutSec, cfg.HTTP.MaxRetries)

	jobsClient := jobs.New(transport, log.Logger)
	itemsClient := items.New(transport, log.Logger)
	activityClient := activity.New(transport, log.Logger)

	registry := endpoint.NewRegistry()
	registry.Register(jobsClient)
	registry.Register(itemsClient)
	registry.Register(activityClient)

	if len(os.Args) < 3 {
		usage(registry)
		os.Exit(2)
	}
	verb, id, args := os.Args[1], os.Args[2], os.Args[3:]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch verb {
	case "jobs":
		err = listJobs(ctx, jobsClient, id, args)
	case "items":
		err = listItems(ctx, itemsClient, id, args)
	case "activity":
		err = listActivity(ctx, activityClient, id, args)
	default:
		usage(registry)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("verb", verb).Msg("request failed")
	}
}

func usage(registry *endpoint.Registry) {
	fmt.Fprintln(os.Stderr, "usage: scrapecloud <resource> <id> [flags]")
	fmt.Fprintln(os.Stderr, "resources:")
	for _, res := range registry.List() {
		ep, _ := registry.Get(res)
		fmt.Fprintf(os.Stderr, "  %-10s %v\n", res, ep.Operations())
	}
}

func listJobs(ctx context.Context, client *jobs.Client, project string, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	spider := fs.String("spider", "", "filter by spider name")
	state := fs.String("state", "", "filter by job state")
	count := fs.Int("count", 0, "max jobs to return")
	run := fs.String("run", "", "schedule a run of the named spider instead of listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *run != "" {
		return runJob(ctx, client, project, *run)
	}

	opts := params.Pairs{}
	if *spider != "" {
		opts = append(opts, params.P("spider", *spider))
	}
	if *state != "" {
		opts = append(opts, params.P("state", *state))
	}
	if *count > 0 {
		opts = append(opts, params.P("pagination", params.Pairs{params.P("count", *count)}))
	}

	resp, err := client.List(ctx, project, opts)
	if err != nil {
		return err
	}
	var list job.ListResponse
	if err := resp.JSON(&list); err != nil {
		// Not the JSON envelope; show what the API sent.
		fmt.Println(resp.String())
		return nil
	}
	for _, j := range list.Jobs {
		fmt.Println(j)
	}
	return nil
}

func runJob(ctx context.Context, client *jobs.Client, project, spider string) error {
	resp, err := client.Run(ctx, project, params.Pairs{params.P("spider", spider)})
	if err != nil {
		return err
	}
	var scheduled job.RunResponse
	if err := resp.JSON(&scheduled); err != nil {
		fmt.Println(resp.String())
		return nil
	}
	fmt.Println(scheduled.JobID)
	return nil
}

func listItems(ctx context.Context, client *items.Client, id string, args []string) error {
	fs := flag.NewFlagSet("items", flag.ExitOnError)
	format := fs.String("format", "", "output format (json, jsonlines, xml, csv, text)")
	fields := fs.String("fields", "", "comma-separated csv fields")
	count := fs.Int("count", 0, "max items to return")
	nodata := fs.Bool("nodata", false, "suppress item data, return meta only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := params.Pairs{}
	switch {
	case *format == "csv" && *fields != "":
		opts = append(opts, params.P("format", params.Pairs{
			params.P("csv", params.Pairs{params.P("fields", *fields)}),
		}))
	case *format != "":
		opts = append(opts, params.P("format", *format))
	}
	if *count > 0 {
		opts = append(opts, params.P("pagination", params.Pairs{params.P("count", *count)}))
	}
	if *nodata {
		opts = append(opts, params.P("nodata", true), params.P("meta", []string{"_key"}))
	}

	resp, err := client.List(ctx, id, opts)
	if err != nil {
		return err
	}
	fmt.Print(resp.String())
	return nil
}

func listActivity(ctx context.Context, client *activity.Client, project string, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ExitOnError)
	count := fs.Int("count", 0, "max events to return")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := params.Pairs{}
	if *count > 0 {
		opts = append(opts, params.P("pagination", params.Pairs{params.P("count", *count)}))
	}

	resp, err := client.List(ctx, project, opts)
	if err != nil {
		return err
	}
	fmt.Print(resp.String())
	return nil
}
