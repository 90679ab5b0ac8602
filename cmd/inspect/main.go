// Command inspect dumps the persisted messenger collections as tables.
// It opens the store read-only so it can run next to the app.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	store := storage.NewBadgerStore(db, slog.Default())

	printUsers(store)
	printServers(store)
	printDMs(store)
	printMessages(store)
}

func newTable(title string, headers []string) *tablewriter.Table {
	color.Green.Println("\n== " + title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func printUsers(store storage.Store) {
	table := newTable("Users", []string{"ID", "Username", "Display Name", "Created At"})
	for _, u := range storage.ReadCollection[domain.User](store, storage.UsersKey) {
		table.Append([]string{short(u.ID), u.Username, u.DisplayName, fmt.Sprint(u.CreatedAt)})
	}
	table.Render()
}

func printServers(store storage.Store) {
	table := newTable("Servers", []string{"ID", "Name", "Owner", "Members", "Channels"})
	for _, s := range storage.ReadCollection[domain.Server](store, storage.ServersKey) {
		table.Append([]string{short(s.ID), s.Name, short(s.OwnerID),
			fmt.Sprint(len(s.Members)), fmt.Sprint(len(s.Channels))})
	}
	table.Render()
}

func printDMs(store storage.Store) {
	table := newTable("Direct Messages", []string{"ID", "User A", "User B", "Created At"})
	for _, d := range storage.ReadCollection[domain.DirectMessage](store, storage.DMsKey) {
		table.Append([]string{short(d.ID), short(d.UserAID), short(d.UserBID), fmt.Sprint(d.CreatedAt)})
	}
	table.Render()
}

func printMessages(store storage.Store) {
	table := newTable("Messages", []string{"ID", "Sender", "Room", "Type", "Text", "Read By"})
	for _, m := range storage.ReadCollection[domain.Message](store, storage.MessagesKey) {
		table.Append([]string{short(m.ID), short(m.SenderID), short(m.RoomID),
			string(m.RoomType), truncate(m.Text, 40), fmt.Sprint(len(m.ReadBy))})
	}
	table.Render()
}

// short keeps the first 8 characters of an id for readability.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
