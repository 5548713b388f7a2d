package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const rule = "----------------------------------------"

func (a *App) Add(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Topic", a.out)
	if err != nil {
		return err
	}
	link, err := getSimpleText(a.reader, "Link", a.out)
	if err != nil {
		return err
	}

	if err := a.linkService.Add(ctx, a.userID, a.masterKey, topic, link); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}
	fmt.Fprintln(a.out, "Link saved.")
	return nil
}

// Search lists links whose topic contains the query. An empty query lists
// everything.
func (a *App) Search(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Search topic (empty for all)", a.out)
	if err != nil {
		return err
	}

	found, err := a.linkService.Search(ctx, a.userID, a.masterKey, query)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}
	if len(found) == 0 {
		fmt.Fprintln(a.out, "No links found.")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results\n", len(found))
	for _, v := range found {
		b.WriteString(rule + "\n")
		fmt.Fprintf(&b, "ID:    %d\nTopic: %s\nLink:  %s\n", v.ID, v.Topic, v.Link)
	}
	b.WriteString(rule + "\n")
	fmt.Fprint(a.out, b.String())
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "ID to delete", a.out)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid ID format.")
		return nil
	}

	if err := a.linkService.Delete(ctx, a.userID, id); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}
	fmt.Fprintln(a.out, "Link deleted (if it existed).")
	return nil
}
