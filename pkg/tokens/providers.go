package tokens

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/google/uuid"
)

// projectMarkers are the files/directories that mark a project root for
// the PROJECT token's ancestor walk
var projectMarkers = []string{".git", "go.mod", "package.json", "pyproject.toml", "setup.py", "Cargo.toml"}

func (r *Resolver) registerBuiltins() {
	reg := func(name, description string, resolve func(args string) (string, error)) {
		r.providers.Replace(name, Provider{Description: description, Resolve: resolve})
	}

	reg("DATE", "current date, strftime format argument (default YYYY-MM-DD)", func(args string) (string, error) {
		return r.formatNow(args, "2006-01-02"), nil
	})
	reg("TIME", "current time, strftime format argument (default HH-MM-SS)", func(args string) (string, error) {
		return r.formatNow(args, "15-04-05"), nil
	})
	reg("DATETIME", "current date and time (default YYYY-MM-DD_HH-MM-SS)", func(args string) (string, error) {
		return r.formatNow(args, "2006-01-02_15-04-05"), nil
	})
	reg("TIMESTAMP", "current unix timestamp in seconds", func(string) (string, error) {
		return strconv.FormatInt(r.clock().Unix(), 10), nil
	})

	reg("YEAR", "current year (YYYY)", func(string) (string, error) {
		return r.clock().Format("2006"), nil
	})
	reg("MONTH", "current month (01-12)", func(string) (string, error) {
		return r.clock().Format("01"), nil
	})
	reg("DAY", "current day of month (01-31)", func(string) (string, error) {
		return r.clock().Format("02"), nil
	})
	reg("HOUR", "current hour (00-23)", func(string) (string, error) {
		return r.clock().Format("15"), nil
	})
	reg("MINUTE", "current minute (00-59)", func(string) (string, error) {
		return r.clock().Format("04"), nil
	})
	reg("SECOND", "current second (00-59)", func(string) (string, error) {
		return r.clock().Format("05"), nil
	})
	reg("WEEKDAY", "current weekday name", func(string) (string, error) {
		return r.clock().Weekday().String(), nil
	})
	reg("WEEK", "ISO week number (01-53)", func(string) (string, error) {
		_, week := r.clock().ISOWeek()
		return fmt.Sprintf("%02d", week), nil
	})
	reg("QUARTER", "current quarter (Q1-Q4)", func(string) (string, error) {
		return fmt.Sprintf("Q%d", (int(r.clock().Month())-1)/3+1), nil
	})
	reg("SEASON", "current season (northern hemisphere)", func(string) (string, error) {
		return season(int(r.clock().Month())), nil
	})

	reg("USER", "current user name", func(string) (string, error) {
		if u, err := user.Current(); err == nil {
			return u.Username, nil
		}
		if name := os.Getenv("USER"); name != "" {
			return name, nil
		}
		return "", errors.New(errors.ErrTokenResolve, "could not determine current user")
	})
	reg("HOSTNAME", "machine host name", func(string) (string, error) {
		name, err := os.Hostname()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTokenResolve, "could not determine hostname")
		}
		return name, nil
	})
	reg("WORKDIR", "base name of the current working directory", func(string) (string, error) {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTokenResolve, "could not determine working directory")
		}
		return filepath.Base(wd), nil
	})
	reg("PROJECT", "name of the enclosing project (ancestor with a repo marker)", func(string) (string, error) {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTokenResolve, "could not determine working directory")
		}
		return projectName(wd), nil
	})

	reg("GIT_BRANCH", "current git branch, 'unknown' outside a repo", func(string) (string, error) {
		return gitOutput("rev-parse", "--abbrev-ref", "HEAD"), nil
	})
	reg("GIT_COMMIT", "current git commit hash, length argument (default 8)", func(args string) (string, error) {
		full := gitOutput("rev-parse", "HEAD")
		if full == "unknown" {
			return full, nil
		}
		length := 8
		if args != "" {
			n, err := strconv.Atoi(args)
			if err != nil || n < 1 {
				return "", errors.Newf(errors.ErrTokenArgs, "GIT_COMMIT length %q is not a positive number", args)
			}
			length = n
		}
		if length > len(full) {
			length = len(full)
		}
		return full[:length], nil
	})

	reg("ENV", "environment variable, ENV{VAR} or ENV{VAR:default}", func(args string) (string, error) {
		if args == "" {
			return "", errors.New(errors.ErrTokenArgs, "ENV requires a variable name argument")
		}
		name, fallback, hasDefault := strings.Cut(args, ":")
		if value, ok := os.LookupEnv(name); ok {
			return value, nil
		}
		if hasDefault {
			return fallback, nil
		}
		return "", errors.Newf(errors.ErrTokenResolve, "environment variable %s is not set", name)
	})

	reg("RANDOM", "random number, RANDOM{a-b} for a range or RANDOM{len} for digits", func(args string) (string, error) {
		return r.randomValue(args)
	})
	reg("COUNTER", "process-lifetime counter, width argument (default 3)", func(args string) (string, error) {
		width := 3
		if args != "" {
			n, err := strconv.Atoi(args)
			if err != nil || n < 1 || n > 10 {
				return "", errors.Newf(errors.ErrTokenArgs, "COUNTER width %q must be a number from 1 to 10", args)
			}
			width = n
		}
		return fmt.Sprintf("%0*d", width, r.counter.Add(1)), nil
	})
	reg("UUID", "random UUID, UUID{short} for the first 8 characters", func(args string) (string, error) {
		id := uuid.NewString()
		if strings.EqualFold(args, "short") {
			return strings.ReplaceAll(id, "-", "")[:8], nil
		}
		return id, nil
	})
}

// formatNow renders the current time with an strftime argument or a
// default Go layout
func (r *Resolver) formatNow(args, defaultLayout string) string {
	layout := defaultLayout
	if args != "" {
		layout = translateStrftime(args)
	}
	return r.clock().Format(layout)
}

func (r *Resolver) randomValue(args string) (string, error) {
	intn := r.randInt
	if intn == nil {
		intn = rand.Intn
	}

	if args == "" {
		return strconv.Itoa(1000 + intn(9000)), nil
	}

	if lo, hi, ok := strings.Cut(args, "-"); ok {
		a, errA := strconv.Atoi(strings.TrimSpace(lo))
		b, errB := strconv.Atoi(strings.TrimSpace(hi))
		if errA != nil || errB != nil || a > b {
			return "", errors.Newf(errors.ErrTokenArgs, "RANDOM range %q must be min-max with min <= max", args)
		}
		return strconv.Itoa(a + intn(b-a+1)), nil
	}

	length, err := strconv.Atoi(args)
	if err != nil || length < 1 || length > 18 {
		return "", errors.Newf(errors.ErrTokenArgs, "RANDOM length %q must be a number from 1 to 18", args)
	}
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + intn(10)))
	}
	return b.String(), nil
}

// season maps a month number to a northern-hemisphere season name
func season(month int) string {
	switch {
	case month == 12 || month <= 2:
		return "winter"
	case month <= 5:
		return "spring"
	case month <= 8:
		return "summer"
	default:
		return "autumn"
	}
}

// projectName walks dir and its ancestors looking for a repo marker and
// returns the base name of the first directory carrying one, falling
// back to the base name of dir itself
func projectName(dir string) string {
	for current := dir; ; {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return filepath.Base(current)
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return filepath.Base(dir)
		}
		current = parent
	}
}

// gitOutput shells out to git and returns the trimmed output, or
// "unknown" on any failure. Git tokens never error.
func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "unknown"
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return "unknown"
	}
	return value
}
