// Command notify-send-lite sends one notification to the running daemon,
// in the spirit of notify-send but covering only what notid understands.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"

	"notid/internal/busclient"
)

func main() {
	appName := flag.String("app-name", "notify-send-lite", "application name")
	replaces := flag.Uint("replaces-id", 0, "id of the notification to replace")
	icon := flag.String("icon", "", "icon name or path")
	urgency := flag.String("urgency", "", "low, normal, or critical")
	category := flag.String("category", "", "notification category")
	expire := flag.Int("expire-time", -1, "timeout in milliseconds (-1 default, 0 never)")
	action := flag.String("action", "", "action as key:label, repeatable via comma")
	schedule := flag.String("schedule", "", "defer display: duration (\"5m\") or RFC3339 time")
	printID := flag.Bool("print-id", false, "print the assigned id")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <summary> [body]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	summary := args[0]
	body := ""
	if len(args) == 2 {
		body = args[1]
	}

	client, err := busclient.Connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer client.Close()

	hints := map[string]dbus.Variant{}
	switch *urgency {
	case "":
	case "low":
		hints["urgency"] = dbus.MakeVariant(byte(0))
	case "normal":
		hints["urgency"] = dbus.MakeVariant(byte(1))
	case "critical":
		hints["urgency"] = dbus.MakeVariant(byte(2))
	default:
		fmt.Fprintf(os.Stderr, "invalid urgency %q\n", *urgency)
		os.Exit(2)
	}
	if *category != "" {
		hints["category"] = dbus.MakeVariant(*category)
	}
	if *schedule != "" {
		hints["schedule-time"] = dbus.MakeVariant(*schedule)
	}

	var actions []string
	for _, pair := range strings.Split(*action, ",") {
		if pair == "" {
			continue
		}
		key, label, ok := strings.Cut(pair, ":")
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid action %q, want key:label\n", pair)
			os.Exit(2)
		}
		actions = append(actions, key, label)
	}

	id, err := client.Notify(busclient.Request{
		AppName:       *appName,
		ReplacesID:    uint32(*replaces),
		AppIcon:       *icon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: int32(*expire),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *printID {
		fmt.Println(id)
	}
}
