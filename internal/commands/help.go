package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for menta",
	Long:  `Display detailed help for all menta commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("menta %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}

func showCustomHelp() {
	fmt.Print(`
███╗   ███╗███████╗███╗   ██╗████████╗ █████╗
████╗ ████║██╔════╝████╗  ██║╚══██╔══╝██╔══██╗
██╔████╔██║█████╗  ██╔██╗ ██║   ██║   ███████║
██║╚██╔╝██║██╔══╝  ██║╚██╗██║   ██║   ██╔══██║
██║ ╚═╝ ██║███████╗██║ ╚████║   ██║   ██║  ██║
╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝

menta - Trainee Learning Progress Tracker

A task card tracks one trainee learning one technology through:
planned → in_progress → ready_for_review → review_scheduled → approved

COMMANDS:

  tech add <name>                 Add a technology to the catalog
  tech ls                         List technologies

  mentor add <email> <name>       Register a mentor
  mentor ls                       List mentors and their trainees
  trainee add <email> <name>      Register a trainee
    -m, --mentor                  Mentor's email (required)
  trainee ls                      List trainees

  plan <trainee> <tech>           Create a task card (one per pair)

  start <trainee> <tech>          Start a timed learning session
    --no-ui                       Start without interactive timer
  stop <trainee>                  Stop the running session → ready_for_review
  status <trainee>                Show the current session

  dashboard <trainee>             All cards with time and review counts
    --no-ui                       Plain text output
  queue <mentor>                  Cards waiting for the mentor

  schedule <trainee> <tech> <when>  Book a review (dd/mm/yyyy [hh:mm], X days)
  cancel <trainee> <tech>           Cancel a card (not if approved)

  review <trainee> <tech>         Submit a review (interactive form)
    --outcome                     approved | rejected
    --feedback                    Written feedback
    --rate N=rating[:comment]     Rate question N (correct|partial|incorrect)
    --history                     Show past reviews

  question add <tech> <text>      Add a check question
    -a, --author                  Authoring mentor's email (required)
  question ls <tech>              List questions
    --all                         Include archived
  question archive <tech> <N>     Archive question N

  log <trainee> <text>            Log a daily status update
  log history <trainee>           Show updates with comments
  log comment <trainee> <N> <text>  Comment on update N
    -m, --mentor                  Commenting mentor's email (required)

  version                         Show version information
  help                            Show this help

Use --config to point at an alternate config file. Settings also come
from MENTA_* environment variables (e.g. MENTA_DB_PATH).

`)
}
