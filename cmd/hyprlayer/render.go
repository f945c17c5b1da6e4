package hyprlayer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/arthur-debert/hyprlayer/pkg/ui"
)

func renderInit(p *ui.Printer, r *thoughts.InitResult) {
	if r.Cancelled {
		p.Muted(MsgInitCancelled)
		return
	}

	if r.OrphansRemoved {
		p.Muted(fmt.Sprintf(MsgInitOrphans, len(r.OrphansFound)))
	}
	if r.ConfigCreated {
		p.Success(fmt.Sprintf(MsgInitConfigSaved, paths.ContractHome(r.ConfigPath)))
	}
	if r.RepoCreated || r.GitInitialized {
		p.Success(fmt.Sprintf(MsgInitRepoCreated, paths.ContractHome(r.Layout.ThoughtsRepo)))
	}
	if r.ExistingDirectory {
		p.Muted(fmt.Sprintf(MsgInitExistingDir, paths.ContractHome(r.Layout.RepoDir)))
	} else {
		p.Muted(fmt.Sprintf(MsgInitCreatedDir, paths.ContractHome(r.Layout.RepoDir)))
	}
	if len(r.HooksUpdated) > 0 {
		p.Muted(fmt.Sprintf(MsgInitHooksUpdated, strings.Join(r.HooksUpdated, ", ")))
	}

	p.Blank()
	p.Success(MsgInitDone)
	p.Blank()
	p.Field("Repository", r.RepoPath)
	p.Field("Thoughts repository", paths.ContractHome(r.Layout.ThoughtsRepo))
	if r.Profile != "" {
		p.Field("Profile", r.Profile)
	}
	p.Field("Directory", r.MappedName)
	p.Field("User", r.User)
	p.Blank()

	p.Section("Links:")
	for _, link := range r.Links {
		p.Printf("  %s -> %s\n", p.Style("Path", paths.ThoughtsDirName+"/"+link.Name), paths.ContractHome(link.Target))
	}
	p.Printf("  %s %s\n", p.Style("Path", paths.ThoughtsDirName+"/"+paths.SearchableDirName), p.Style("Muted", "(rebuilt on sync)"))
	p.Blank()
	p.Muted(MsgInitNextSteps)
}

func renderUninit(p *ui.Printer, r *thoughts.UninitResult) {
	if r.OrphansRemoved {
		p.Muted(fmt.Sprintf(MsgUninitOrphans, len(r.OrphansFound)))
	}
	p.Success(fmt.Sprintf(MsgUninitDone, r.RepoPath))
	if r.MappingRemoved {
		p.Muted(fmt.Sprintf(MsgUninitMapping, describeMapping(r.MappedName, r.Profile)))
	} else {
		p.Muted(MsgUninitNoMapping)
	}
	if r.ContentDir != "" {
		p.Muted(fmt.Sprintf(MsgUninitContentKept, paths.ContractHome(r.ContentDir)))
	}
}

// renderSync writes progress to out and every non-fatal failure to warn.
// None of them change the exit status.
func renderSync(out, warn *ui.Printer, r *thoughts.SyncResult) {
	out.Muted(fmt.Sprintf(MsgSyncIndexed, r.LinkedCount))

	if r.Committed {
		out.Success(fmt.Sprintf(MsgSyncCommitted, shortHash(r.CommitHash), r.CommitMessage))
	} else {
		out.Muted(MsgSyncNoChanges)
	}

	if !r.RemoteConfigured() {
		out.Muted(MsgSyncNoRemote)
		out.Success(MsgSyncDoneLocalOnly)
		return
	}

	if r.Conflict {
		warn.Warning(fmt.Sprintf(MsgSyncConflict, r.RemoteURL, paths.ContractHome(r.ThoughtsRepo)))
		return
	}
	if r.Pulled {
		out.Muted(fmt.Sprintf(MsgSyncPulled, r.RemoteURL))
	}
	if r.Pushed {
		out.Muted(fmt.Sprintf(MsgSyncPushed, r.RemoteURL))
	}
	for _, w := range r.Warnings() {
		warn.Warning(fmt.Sprintf(MsgSyncWarning, w))
	}
	if len(r.Warnings()) == 0 {
		out.Success(MsgSyncDone)
	} else {
		out.Success(MsgSyncDoneLocalOnly)
	}
}

func renderStatus(p *ui.Printer, r *thoughts.StatusReport) {
	p.Header(MsgStatusTitle)

	p.Section("Configuration:")
	p.Field("Config file", paths.ContractHome(r.ConfigPath))
	p.Field("Thoughts repository", r.Effective.ThoughtsRepo)
	p.Field("Repos directory", r.Effective.ReposDir)
	p.Field("Global directory", r.Effective.GlobalDir)
	p.Field("User", r.Config.User)
	p.Field("Mapped repositories", fmt.Sprintf("%d", len(r.Config.RepoMappings)))
	p.Blank()

	p.Section("Current repository:")
	p.Field("Path", r.RepoPath)
	switch {
	case !r.Mapped():
		p.Warning("  " + MsgStatusUnmapped)
	case !r.Initialized:
		p.Field("Thoughts directory", r.Effective.MappedName)
		if r.Effective.ProfileName != "" {
			p.Field("Profile", r.Effective.ProfileName)
		}
		p.Warning("  " + MsgStatusNotInit)
	default:
		p.Field("Thoughts directory", r.Effective.MappedName)
		if r.Effective.ProfileName != "" {
			p.Field("Profile", r.Effective.ProfileName)
		}
		for _, link := range r.Links {
			p.Printf("    %s -> %s\n", p.Style("Path", link.Name), paths.ContractHome(link.Target))
		}
	}
	p.Blank()

	p.Section("Thoughts repository:")
	if !r.RepoFound {
		p.Warning("  " + fmt.Sprintf(MsgStatusNoRepo, paths.ContractHome(r.ThoughtsRepo)))
		return
	}
	if r.GitErr != nil {
		p.Warning(fmt.Sprintf("  %v", r.GitErr))
		return
	}

	if r.LastCommit != nil {
		p.Field("Last commit", r.LastCommit.String())
	} else {
		p.Field("Last commit", MsgStatusNoCommits)
	}
	if r.RemoteURL != "" {
		p.Field("Remote", r.RemoteURL)
	} else {
		p.Field("Remote", MsgStatusNoRemote)
	}
	p.Blank()

	if !r.HasChanges {
		p.Success(MsgStatusClean)
		return
	}
	p.Section("Uncommitted changes:")
	for _, line := range strings.Split(strings.TrimRight(r.Changes, "\n"), "\n") {
		p.Printf("  %s\n", line)
	}
}

func renderProfileCreate(p *ui.Printer, r *thoughts.ProfileCreateResult) {
	if r.Sanitized() {
		p.Warning(fmt.Sprintf(MsgProfileSanitized, r.Requested, r.Name))
	}
	if r.RepoCreated || r.GitInitialized {
		p.Muted(fmt.Sprintf(MsgProfileRepoCreated, paths.ContractHome(r.Storage.ThoughtsRepo)))
	}
	p.Success(fmt.Sprintf(MsgProfileCreated, r.Name))
	renderStorage(p, r.Storage)
	p.Blank()
	p.Muted(fmt.Sprintf(MsgProfileUse, r.Name))
}

func renderProfileList(p *ui.Printer, list *thoughts.ProfileList) {
	p.Section("Default:")
	renderStorage(p, list.Default)
	p.Blank()

	if len(list.Profiles) == 0 {
		p.Muted(MsgProfileNone)
		return
	}
	for _, profile := range list.Profiles {
		p.Section(profile.Name + ":")
		renderStorage(p, profile.Storage)
		p.Field("Repositories", fmt.Sprintf("%d", len(profile.Repos)))
		p.Blank()
	}
}

func renderProfile(p *ui.Printer, profile *thoughts.Profile) {
	p.Header("Profile: " + profile.Name)
	renderStorage(p, profile.Storage)
	p.Blank()

	p.Section("Repositories:")
	if len(profile.Repos) == 0 {
		p.Muted("  none")
		return
	}
	for _, repo := range profile.Repos {
		p.Printf("  %s\n", p.Style("Path", repo))
	}
}

func renderProfileDelete(p *ui.Printer, r *thoughts.ProfileDeleteResult) {
	p.Success(fmt.Sprintf(MsgProfileDeleted, r.Name))
	if len(r.Orphaned) > 0 {
		p.Warning(fmt.Sprintf(MsgProfileOrphaned, strings.Join(r.Orphaned, ", ")))
	}
}

func renderConfig(p *ui.Printer, cfg *config.GlobalConfig, path string) {
	p.Header("Thoughts Configuration")
	p.Field("Config file", paths.ContractHome(path))
	p.Field("Thoughts repository", cfg.ThoughtsRepo)
	p.Field("Repos directory", cfg.ReposDir)
	p.Field("Global directory", cfg.GlobalDir)
	p.Field("User", cfg.User)
	p.Blank()

	p.Section("Repository mappings:")
	if len(cfg.RepoMappings) == 0 {
		p.Muted("  none")
	}
	repos := make([]string, 0, len(cfg.RepoMappings))
	for repo := range cfg.RepoMappings {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	for _, repo := range repos {
		m := cfg.RepoMappings[repo]
		p.Printf("  %s -> %s\n", p.Style("Path", paths.ContractHome(repo)), describeMapping(m.RepoName(), m.ProfileName()))
	}
	p.Blank()

	p.Section("Profiles:")
	names := cfg.ProfileNames()
	if len(names) == 0 {
		p.Muted("  none")
		return
	}
	for _, name := range names {
		storage := cfg.Profiles[name]
		p.Printf("  %s: %s\n", p.Style("Bold", name), storage.ThoughtsRepo)
	}
}

func renderStorage(p *ui.Printer, s config.ProfileStorage) {
	p.Field("Thoughts repository", s.ThoughtsRepo)
	p.Field("Repos directory", s.ReposDir)
	p.Field("Global directory", s.GlobalDir)
}

func describeMapping(name, profile string) string {
	if profile == "" {
		return name
	}
	return fmt.Sprintf("%s (profile: %s)", name, profile)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
