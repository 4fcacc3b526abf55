// hostelctl - Command line client for ChukaHostels
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/meshackowase-commits/HOSTESserch/clients/go/hostels"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := hostels.NewClient(os.Getenv("HOSTELS_URL"))
	cmd := os.Args[1]

	switch cmd {
	case "health":
		resp, err := client.Health(ctx)
		exitOnError(err)
		printJSON(resp)

	case "search":
		query := ""
		var filters []string
		for _, arg := range os.Args[2:] {
			if f, ok := strings.CutPrefix(arg, "--filter="); ok {
				filters = append(filters, f)
				continue
			}
			query = strings.TrimSpace(query + " " + arg)
		}
		resp, err := client.Search(ctx, query, filters...)
		exitOnError(err)
		fmt.Printf("Showing %d of %d hostels\n", resp.Count, resp.Total)
		for _, h := range resp.Cards {
			fmt.Printf("  %s  %s  %s %s  %s\n", h.ID, h.Name, h.Price, h.Period, h.Distance)
		}

	case "show":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: hostelctl show <hostel_id>")
			os.Exit(1)
		}
		d, err := client.GetHostel(ctx, os.Args[2])
		exitOnError(err)
		printDetail(d)

	case "browse":
		browse(ctx, client)

	case "book":
		if len(os.Args) < 8 {
			fmt.Fprintln(os.Stderr, "Usage: hostelctl book <hostel_id> <room_type> <check_in> <full_name> <phone> <admission_no> [notes]")
			os.Exit(1)
		}
		form := booking.Form{
			RoomType:        os.Args[3],
			CheckInDate:     os.Args[4],
			FullName:        os.Args[5],
			Phone:           os.Args[6],
			AdmissionNumber: os.Args[7],
		}
		if len(os.Args) > 8 {
			form.Notes = strings.Join(os.Args[8:], " ")
		}
		b, err := client.Book(ctx, os.Args[2], form)
		exitOnError(err)
		fmt.Printf("Booked: %s (%s)\n", b.ID, b.Status)

	case "bookings":
		var status models.BookingStatus
		if len(os.Args) > 2 {
			status = models.BookingStatus(os.Args[2])
		}
		resp, err := client.ListBookings(ctx, status)
		exitOnError(err)
		for _, b := range resp.Bookings {
			fmt.Printf("  %s  %-10s hostel=%s student=%s  %s\n",
				b.ID, b.Status, b.HostelID, b.StudentID, b.CreatedAt.Format("2006-01-02 15:04"))
		}

	case "status":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: hostelctl status <booking_id> <pending|confirmed|cancelled|completed>")
			os.Exit(1)
		}
		b, err := client.SetStatus(ctx, os.Args[2], models.BookingStatus(os.Args[3]))
		exitOnError(err)
		fmt.Printf("Booking %s is now %s\n", b.ID, b.Status)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

// browse opens each hostel id read from stdin. A new id supersedes the one
// still loading, so only the latest detail is printed.
func browse(ctx context.Context, client *hostels.Client) {
	loader := booking.NewLoader(client.GetHostel)
	defer loader.Close()

	var (
		wg  sync.WaitGroup
		out sync.Mutex
	)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := loader.Open(ctx, id)
			if errors.Is(err, booking.ErrStaleLoad) {
				return
			}
			out.Lock()
			defer out.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", id, err)
				return
			}
			printDetail(d)
		}()
	}
	wg.Wait()
	exitOnError(scanner.Err())
}

func printDetail(d *booking.Detail) {
	fmt.Printf("%s\n", d.Hostel.Name)
	fmt.Printf("  %s  %s %s\n", d.LocationLabel(), d.Price, d.Period)
	if d.Distance != "" {
		fmt.Printf("  %s\n", d.Distance)
	}
	if d.Coordinates != "" {
		fmt.Printf("  %s\n", d.Coordinates)
	}
	if len(d.Hostel.Amenities) > 0 {
		fmt.Printf("  Amenities: %s\n", strings.Join(d.Hostel.Amenities, ", "))
	}
	for _, rt := range d.RoomTypes {
		fmt.Printf("  %-12s %s  (%d available)\n", rt.Name, models.FormatKSh(rt.Price), rt.Available)
	}
	if !d.Available {
		fmt.Println("  Not accepting bookings")
	}
	fmt.Printf("  Updated %s\n", d.Hostel.UpdatedAt.Format(time.RFC1123))
}

func usage() {
	fmt.Println(`hostelctl - ChukaHostels command line client

Usage: hostelctl <command> [options]

Commands:
  search [query] [--filter=x]   Search hostels
  show <hostel_id>              Show a hostel
  browse                        Show hostels by id read from stdin, latest wins
  book <hostel_id> <room_type> <check_in> <full_name> <phone> <admission_no> [notes]
                                Request a booking
  bookings [status]             List your bookings
  status <booking_id> <status>  Change a booking's status
  health                        Check server health

Environment:
  HOSTELS_URL       Server URL (default: http://localhost:8080)
  HOSTELS_PROFILE   Profile id sent as X-Profile-ID`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
