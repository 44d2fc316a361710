package cmd

// Options is the root of the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Dir      string `short:"C" long:"dir" description:"working directory of the repository" default:"."`
	Config   string `short:"f" long:"config" description:"configuration YAML path (defaults to .caf/config.yaml)"`
	LogLevel string `long:"log-level" description:"log level: debug, info, warn, error, disabled"`

	Init      *InitCmd      `command:"init"       description:"Create an empty repository"`
	Commit    *CommitCmd    `command:"commit"     description:"Record a snapshot of the working directory"`
	Tag       *TagCmd       `command:"tag"        description:"Create a tag"`
	DeleteTag *DeleteTagCmd `command:"delete-tag" description:"Delete a tag"`
	Tags      *TagsCmd      `command:"tags"       description:"List tags"`
	LsTree    *LsTreeCmd    `command:"ls-tree"    description:"List the tree of a commit"`
	Log       *LogCmd       `command:"log"        description:"Show commit history"`
	Diff      *DiffCmd      `command:"diff"       description:"Show changed paths between two commits"`
}

// newOptions instantiates every sub-command so that go-flags can populate
// whichever one is selected.
func newOptions() *Options {
	o := &Options{}
	o.Init = &InitCmd{global: o}
	o.Commit = &CommitCmd{global: o}
	o.Tag = &TagCmd{global: o}
	o.DeleteTag = &DeleteTagCmd{global: o}
	o.Tags = &TagsCmd{global: o}
	o.LsTree = &LsTreeCmd{global: o}
	o.Log = &LogCmd{global: o}
	o.Diff = &DiffCmd{global: o}
	return o
}
