/*package error contains simple funcitons for reporting fatal segy errors.
*/
package error

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// Exit is called after a fatal error has been logged.
var Exit = os.Exit

// External reports an error to stderr and kills the process. It should be
// used when an error is something a user could reasonbly be expected to fix
// through changes in configuration/data/environement. It has the same
// signature at the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	log.Error().Msg("segy exited early with the following error:\n" +
		fmt.Sprintf(format, a...))
	Exit(1)
}

// Internal reports an error to stderr along with a stack trace and kills the
// process. It should be used when the error requires a code dive to fix. It
// has the same signature at the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	log.Error().Str("stack", string(debug.Stack())).
		Msg("segy exited early with the following internal error:\n" +
			fmt.Sprintf(format, a...))
	Exit(1)
}

// Check reports err with External if it isn't nil.
func Check(err error) {
	if err != nil {
		External("%s", err.Error())
	}
}
