package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iliyamo/livehouse/internal/adminui"
	"github.com/iliyamo/livehouse/internal/client"
	"github.com/iliyamo/livehouse/internal/model"
	"github.com/iliyamo/livehouse/internal/schedule"
)

type app struct {
	api  *client.Client
	sess *adminui.Session
	out  io.Writer
	in   io.Reader
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, args)
	case "schedule":
		return a.schedule(ctx)
	case "venue":
		return a.venue(ctx)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := a.sess.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "add":
		return a.add(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.remove(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) list(ctx context.Context) error {
	if err := a.sess.Refresh(ctx); err != nil {
		return err
	}
	events := a.sess.Events()
	if len(events) == 0 {
		fmt.Fprintln(a.out, "no events")
		return nil
	}
	for _, e := range events {
		fmt.Fprintf(a.out, "%4d  %s  %-30s  %s\n", e.ID, e.Date, e.Title, e.TicketPrice)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.sess.Refresh(ctx); err != nil {
		return err
	}
	if err := a.sess.Select(id); err != nil {
		return err
	}
	printEvent(a.out, *a.sess.Selected())
	return nil
}

func printEvent(w io.Writer, e model.Event) {
	fmt.Fprintf(w, "#%d %s\n", e.ID, e.Title)
	fmt.Fprintf(w, "date:    %s\n", e.Date)
	if e.Artists != "" {
		fmt.Fprintf(w, "artists: %s\n", e.Artists)
	}
	fmt.Fprintf(w, "open:    %s  start: %s\n", e.OpenTime, e.StartTime)
	fmt.Fprintf(w, "adv:     %s  door: %s\n", e.TicketPrice, schedule.EffectiveDoorPrice(e))
	if e.ImageURL != "" {
		fmt.Fprintf(w, "flyer:   %s\n", e.ImageURL)
	}
	if e.Description != "" {
		fmt.Fprintf(w, "\n%s\n", e.Description)
	}
}

func (a *app) schedule(ctx context.Context) error {
	entries, err := a.api.Schedule(ctx)
	if err != nil {
		return err
	}
	for _, en := range entries {
		mark := " "
		switch {
		case en.IsToday:
			mark = "*"
		case en.IsPast:
			mark = "-"
		}
		fmt.Fprintf(a.out, "%s %s (%s) %-9s %-30s ADV %s / DOOR %s\n",
			mark, en.Date, en.Weekday, en.DayClass, en.Title, en.TicketPrice, en.EffectiveDoorPrice)
	}
	return nil
}

func (a *app) venue(ctx context.Context) error {
	info, err := a.api.Venue(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n\n", info.Name, info.Tagline)
	for _, line := range info.Address {
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintf(a.out, "TEL %s  %s  (%s)\n", info.Contact.Phone, info.Contact.Email, info.Contact.OfficeHours)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	password := fs.String("password", os.Getenv("LIVEHOUSE_PASSWORD"), "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		fmt.Fprint(a.out, "password: ")
		*password = readLine(a.in)
	}
	if err := a.sess.Login(ctx, *password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	vals := formFlags(fs)
	image := fs.String("image", "", "flyer image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.sess.StartAdd(); err != nil {
		return err
	}
	return a.submit(ctx, fs, vals, *image)
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	vals := formFlags(fs)
	image := fs.String("image", "", "flyer image file to upload")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := a.sess.Verify(ctx); err != nil {
		return err
	}
	if err := a.sess.Refresh(ctx); err != nil {
		return err
	}
	if err := a.sess.StartEdit(id); err != nil {
		return err
	}
	return a.submit(ctx, fs, vals, *image)
}

func (a *app) submit(ctx context.Context, fs *flag.FlagSet, vals map[string]*string, image string) error {
	defer a.sess.Cancel()
	if err := applyForm(a.sess, fs, vals); err != nil {
		return err
	}
	if err := uploadFlyer(ctx, a.sess, image); err != nil {
		return err
	}
	if err := a.sess.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "saved")
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if !*yes {
		fmt.Fprintf(a.out, "Delete event %d? [y/N] ", id)
		if ans := strings.ToLower(strings.TrimSpace(readLine(a.in))); ans != "y" && ans != "yes" {
			fmt.Fprintln(a.out, "cancelled")
			return nil
		}
	}
	if err := a.sess.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "deleted")
	return nil
}

// upload stores an image without attaching it to an event and prints its
// URL.
func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("missing file")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	url, err := a.api.UploadImage(ctx, f.Name(), f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}
