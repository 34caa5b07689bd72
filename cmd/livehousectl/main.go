// Command livehousectl is the terminal admin screen for the venue schedule.
//
//	livehousectl [-server URL] <command> [flags]
//
// Commands: list, show, schedule, venue, login, logout, add, edit, delete,
// upload.  The admin token is kept in the user config directory between
// invocations.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/livehouse/internal/adminui"
	"github.com/iliyamo/livehouse/internal/client"
)

func main() {
	server := flag.String("server", envOr("LIVEHOUSE_URL", "http://localhost:3000"), "API base URL")
	tz := flag.String("tz", envOr("VENUE_TIMEZONE", "Asia/Tokyo"), "venue time zone")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fail(err)
	}
	api := client.New(*server)
	sess, err := adminui.New(api, adminui.FileTokenStore{Path: adminui.DefaultTokenPath()}, loc)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &app{api: api, sess: sess, out: os.Stdout, in: os.Stdin}
	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: livehousectl [-server URL] [-tz ZONE] <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands: list, show ID, schedule, venue, login, logout, add, edit ID, delete ID, upload FILE")
	flag.PrintDefaults()
}

// fail prints every error the same way and exits.
func fail(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "error: %s (HTTP %d)\n", apiErr.Message, apiErr.Status)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseID(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing event id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid event id %q", args[0])
	}
	return id, nil
}

// formFlags binds one flag per event field.  Only flags given on the
// command line are applied to the form.
func formFlags(fs *flag.FlagSet) map[string]*string {
	fields := []struct{ name, usage string }{
		{"date", "event date (YYYY-MM-DD)"},
		{"title", "title"},
		{"artists", "performers"},
		{"description", "description"},
		{"openTime", "doors open (HH:MM)"},
		{"startTime", "show start (HH:MM)"},
		{"ticketPrice", "advance price, e.g. 2000"},
		{"doorPrice", "door price, empty for advance + 500"},
		{"imageUrl", "flyer image URL"},
	}
	vals := make(map[string]*string, len(fields))
	for _, f := range fields {
		vals[f.name] = fs.String(f.name, "", f.usage)
	}
	return vals
}

func applyForm(s *adminui.Session, fs *flag.FlagSet, vals map[string]*string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if v, ok := vals[f.Name]; ok && err == nil {
			err = s.SetField(f.Name, *v)
		}
	})
	return err
}

func uploadFlyer(ctx context.Context, s *adminui.Session, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Upload(ctx, f.Name(), f)
}

// readLine reads one line from r without the line ending.
func readLine(r io.Reader) string {
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
