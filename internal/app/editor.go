package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// editor is the program the Edit key launches, with any fixed arguments from $VISUAL or
// $EDITOR.
type editor struct {
	argv []string
}

var (
	unixEditors    = [][]string{{"vi"}, {"vim"}, {"nano"}}
	windowsEditors = [][]string{{"notepad++.exe", "-multiInst", "-nosession"}, {"notepad.exe"}}
)

func findEditor() (editor, bool) {
	return lookupEditor(runtime.GOOS, os.Getenv, exec.LookPath)
}

// lookupEditor tries $VISUAL, then $EDITOR, then the platform defaults, keeping the first
// program that resolves on PATH.
func lookupEditor(goos string, getenv func(string) string, lookPath func(string) (string, error)) (editor, bool) {
	candidates := [][]string{splitCommandLine(getenv("VISUAL")), splitCommandLine(getenv("EDITOR"))}
	if goos == "windows" {
		candidates = append(candidates, windowsEditors...)
	} else {
		candidates = append(candidates, unixEditors...)
	}

	for _, argv := range candidates {
		if len(argv) == 0 {
			continue
		}
		resolved, err := lookPath(expandHome(argv[0]))
		if err != nil {
			continue
		}
		return editor{argv: append([]string{resolved}, argv[1:]...)}, true
	}
	return editor{}, false
}

// command builds the argv that opens path with the cursor on line (1-based). Editors
// without a known line syntax only get the path.
func (e editor) command(path string, line int64) []string {
	args := append([]string(nil), e.argv...)
	if line <= 1 {
		return append(args, path)
	}
	n := strconv.FormatInt(line, 10)
	switch programName(e.argv[0]) {
	case "vi", "vim", "nvim", "view", "nano", "emacs", "emacsclient", "micro", "kak", "joe", "mg":
		return append(args, "+"+n, path)
	case "code", "code-insiders", "codium":
		return append(args, "--goto", path+":"+n)
	case "subl", "hx", "zed":
		return append(args, path+":"+n)
	case "notepad++":
		return append(args, "-n"+n, path)
	}
	return append(args, path)
}

// programName strips the directory and a Windows .exe suffix from program.
func programName(program string) string {
	if i := strings.LastIndexAny(program, `/\`); i >= 0 {
		program = program[i+1:]
	}
	return strings.TrimSuffix(strings.ToLower(program), ".exe")
}

// splitCommandLine splits an editor variable into words. Quotes group words, and a
// backslash outside single quotes escapes the next character.
func splitCommandLine(s string) []string {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			word.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case r == ' ' || r == '\t' || r == '\n':
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		words = append(words, word.String())
	}
	return words
}

// expandHome resolves a leading "~/" in an editor path.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != '\\') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
