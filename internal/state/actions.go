package state

// Command is what the Machine asks the session to execute.
type Command interface {
	command()
}

type NoOp struct{}
type Quit struct{}

// ===== NAVIGATION COMMANDS =====

type DownOneLine struct{}
type UpOneLine struct{}
type DownHalfScreen struct{}
type UpHalfScreen struct{}
type DownOneScreen struct{}
type UpOneScreen struct{}
type JumpBeginning struct{}
type JumpEnd struct{}

// JumpPercent moves to Percent of the input; values above 100 mean the end.
type JumpPercent struct {
	Percent uint64
}

// ===== SEARCH COMMANDS =====

// Search runs Query. An empty query repeats the previous search.
type Search struct {
	Query string
}
type SearchNext struct{}
type SearchPrev struct{}

// ===== HOST COMMANDS =====

type Help struct{}
type Edit struct{}
type Suspend struct{}

func (NoOp) command()           {}
func (Quit) command()           {}
func (DownOneLine) command()    {}
func (UpOneLine) command()      {}
func (DownHalfScreen) command() {}
func (UpHalfScreen) command()   {}
func (DownOneScreen) command()  {}
func (UpOneScreen) command()    {}
func (JumpBeginning) command()  {}
func (JumpEnd) command()        {}
func (JumpPercent) command()    {}
func (Search) command()         {}
func (SearchNext) command()     {}
func (SearchPrev) command()     {}
func (Help) command()           {}
func (Edit) command()           {}
func (Suspend) command()        {}
