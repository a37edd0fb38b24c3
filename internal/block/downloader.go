package block

import (
	"fmt"
	"path"
	"strings"
)

// Maps recognized archive suffixes to the tar compression flag used for
// extraction. A bare ".tar" needs no flag.
var archiveSuffixes = []struct {
	suffix string
	flag   string
}{
	{".tar.gz", "-z"},
	{".tgz", "-z"},
	{".tar.bz2", "-j"},
	{".tbz2", "-j"},
	{".tar.xz", "-J"},
	{".txz", "-J"},
	{".tar", ""},
}

// Resolves the package source into a fetch command and a source directory.
type downloader struct {
	url        string
	repository string
	branch     string
	commit     string
	recursive  bool
}

// Creates a downloader from the source fields of a spec.
func newDownloader(s Spec) downloader {
	return downloader{
		url:        s.URL,
		repository: s.Repository,
		branch:     s.Branch,
		commit:     s.Commit,
		recursive:  s.Recursive,
	}
}

// Checks the mutual-exclusivity and dependency rules of the source fields.
func (d downloader) validate() error {
	if d.url != "" && d.repository != "" {
		return fmt.Errorf("%w: both url and repository given", ErrConfiguration)
	}
	if d.url == "" && d.repository == "" {
		return fmt.Errorf("%w: one of url or repository must be given", ErrConfiguration)
	}
	if d.repository == "" {
		if d.branch != "" {
			return fmt.Errorf("%w: branch requires a repository", ErrConfiguration)
		}
		if d.commit != "" {
			return fmt.Errorf("%w: commit requires a repository", ErrConfiguration)
		}
		if d.recursive {
			return fmt.Errorf("%w: recursive requires a repository", ErrConfiguration)
		}
	}
	if d.url != "" {
		if _, err := tarFlag(path.Base(d.url)); err != nil {
			return err
		}
	}
	return nil
}

// Returns the single fetch command for the source.
//
// Archive sources download with wget (no-clobber, so a retried execution is
// safe) and extract into the working directory. Repository sources clone in
// one command, shallow unless a specific commit is pinned. Retry and backoff
// are left to the execution engine.
func (d downloader) fetch(wd string) string {
	if d.url != "" {
		tarball := path.Base(d.url)
		flag, _ := tarFlag(tarball) // Validated at construction.

		extract := fmt.Sprintf("tar -x -f %s -C %s", path.Join(wd, tarball), wd)
		if flag != "" {
			extract += " " + flag
		}

		return strings.Join([]string{
			fmt.Sprintf("mkdir -p %s", wd),
			fmt.Sprintf("wget -q -nc --no-check-certificate -P %s %s", wd, d.url),
			extract,
		}, " && ")
	}

	dir := repositoryName(d.repository)

	var opts []string
	if d.commit == "" {
		opts = append(opts, "--depth=1")
	}
	if d.branch != "" {
		opts = append(opts, "--branch", d.branch)
	}
	if d.recursive {
		opts = append(opts, "--recursive")
	}

	clone := "git clone"
	if len(opts) > 0 {
		clone += " " + strings.Join(opts, " ")
	}
	clone += fmt.Sprintf(" %s %s", d.repository, dir)

	cmds := []string{fmt.Sprintf("mkdir -p %s", wd), fmt.Sprintf("cd %s", wd), clone}
	if d.commit != "" {
		cmds = append(cmds,
			fmt.Sprintf("cd %s", dir),
			fmt.Sprintf("git checkout %s", d.commit),
		)
	}
	cmds = append(cmds, "cd -")

	return strings.Join(cmds, " && ")
}

// Returns the directory the fetch command leaves the source in.
func (d downloader) sourceDirectory(wd string) string {
	if d.url != "" {
		return path.Join(wd, stripArchiveSuffix(path.Base(d.url)))
	}
	return path.Join(wd, repositoryName(d.repository))
}

// Returns the tar compression flag for an archive name, or a configuration
// error when the suffix is not recognized.
func tarFlag(name string) (string, error) {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.flag, nil
		}
	}
	return "", fmt.Errorf("%w: unrecognized archive format %q", ErrConfiguration, name)
}

// Removes a recognized archive suffix from a file name.
func stripArchiveSuffix(name string) string {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s.suffix) {
			return strings.TrimSuffix(name, s.suffix)
		}
	}
	return name
}

// Returns the checkout directory name for a repository URL.
func repositoryName(repository string) string {
	return strings.TrimSuffix(path.Base(repository), ".git")
}
