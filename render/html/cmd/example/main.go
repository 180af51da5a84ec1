// Generates an example HTML snapshot page and writes it to stdout.
// Usage: go run ./render/html/cmd/example > example.html
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/core"
	htmlrender "github.com/sonnes/logboard/render/html"
)

func main() {
	now := time.Date(2026, 2, 13, 10, 15, 0, 0, time.UTC)

	snap := core.NewSnapshot(now, []core.Source{
		{
			Name: "chatbot.log",
			Content: "2026-02-13 10:14:02 INFO question=\"Do you have vegan options?\"\n" +
				"2026-02-13 10:14:03 INFO retrieved=4 top_score=0.82\n" +
				"2026-02-13 10:14:05 INFO answer=\"Yes, the falafel plate and the lentil soup are vegan.\"\n" +
				"2026-02-13 10:14:40 INFO question=\"Are you open on Sunday?\"\n" +
				"2026-02-13 10:14:41 INFO retrieved=3 top_score=0.77\n" +
				"2026-02-13 10:14:43 INFO answer=\"We are open 11:00-21:00 on Sundays.\"\n",
		},
		{
			Name: "error.log",
			Content: "2026-02-13 10:12:55 ERROR generate: upstream timeout after 30s\n" +
				"Traceback (most recent call last):\n" +
				"  File \"app.py\", line 88, in answer\n" +
				"    TimeoutError: model did not respond\n",
		},
		{
			Name: "pipeline.log",
			Content: "2026-02-13 09:00:00 INFO embedding 212 menu documents\n" +
				"2026-02-13 09:00:14 INFO index built dim=384 size=212\n",
		},
	}).WithSkipped("archive.log")

	r := htmlrender.New()
	r.Title = "logboard example"
	r.Notes = "On call? Restart the bot with `make restart` and watch **error.log**."
	if err := r.Render(os.Stdout, snap); err != nil {
		log.Fatal(err)
	}
}
