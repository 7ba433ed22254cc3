// CI pipeline for the richtext utility
//
// Runs the Go test suite, builds the richtext binary for linux/amd64 and
// linux/arm64 with the version baked in, and packs the binaries into
// multi-platform alpine images that can be exported or published.

package main

import (
	"context"
	"dagger/richtext/internal/dagger"
	"fmt"
)

type Richtext struct{}

func (m *Richtext) GoBuildEnv(source *dagger.Directory) *dagger.Container {
	goCache := dag.CacheVolume("go")
	return dag.Container().
		From("golang:alpine").
		WithDirectory("/src", source).
		WithWorkdir("/src").
		WithEnvVariable("GOOS", "linux").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", goCache).
		WithExec([]string{"go", "mod", "download"})
}

// Test прогоняет go vet и тесты всех пакетов.
func (m *Richtext) Test(ctx context.Context, source *dagger.Directory) (string, error) {
	return m.GoBuildEnv(source).
		WithExec([]string{"go", "vet", "./..."}).
		WithExec([]string{"go", "test", "-count=1", "./..."}).
		Stdout(ctx)
}

func (m *Richtext) Env(platform dagger.Platform, appBin *dagger.File) *dagger.Container {
	return dag.Container(dagger.ContainerOpts{
		Platform: platform,
	}).
		From("alpine").
		WithWorkdir("/app").
		WithFile("/app/richtext", appBin).
		WithEnvVariable("RICHTEXT_FORMAT", "html").
		WithEntrypoint([]string{"/app/richtext"})
}

func (m *Richtext) Build(version string, source *dagger.Directory) []*dagger.Container {
	buildMatrix := []struct {
		Arch     string
		BinName  string
		Platform dagger.Platform
	}{
		{
			Arch:     "amd64",
			BinName:  "/build/richtext-linux",
			Platform: dagger.Platform("linux/amd64"),
		},
		{
			Arch:     "arm64",
			BinName:  "/build/richtext-linux-arm64",
			Platform: dagger.Platform("linux/arm64/v8"),
		},
	}

	var images []*dagger.Container
	for _, buildParam := range buildMatrix {
		builder := m.GoBuildEnv(source).
			WithEnvVariable("GOARCH", buildParam.Arch).
			WithExec([]string{"go", "build", "-o", buildParam.BinName, "-ldflags", fmt.Sprintf("-s -w -X main.version=%s", version), "./cmd/richtext"})

		image := m.Env(buildParam.Platform, builder.File(buildParam.BinName)).
			WithLabel("org.opencontainers.image.title", "richtext").
			WithLabel("org.opencontainers.image.version", version)
		images = append(images, image)
	}
	return images
}

func (m *Richtext) Publish(
	ctx context.Context,
	images []*dagger.Container,
	registrySecret *dagger.Secret,
	registryUser string,
	imageName string,
) (string, error) {
	return dag.Container().
		WithRegistryAuth("ghcr.io", registryUser, registrySecret).
		Publish(ctx, "ghcr.io/"+imageName, dagger.ContainerPublishOpts{PlatformVariants: images})
}

func (m *Richtext) Export(
	ctx context.Context,
	images []*dagger.Container,
	imageName string,
) (string, error) {
	return dag.Container().
		Export(ctx, imageName, dagger.ContainerExportOpts{PlatformVariants: images})
}

func (m *Richtext) BuildLocal(ctx context.Context, name string, source *dagger.Directory) (string, error) {
	return m.Export(ctx, m.Build("v0.1.0", source), name)
}

// Release тестирует исходники и публикует образ с тегом версии.
func (m *Richtext) Release(ctx context.Context, version string, source *dagger.Directory,
	registrySecret *dagger.Secret,
	registryUser string,
	imageName string,
) (string, error) {
	if _, err := m.Test(ctx, source); err != nil {
		return "", err
	}
	return m.Publish(ctx, m.Build(version, source), registrySecret, registryUser, fmt.Sprintf("%s:%s", imageName, version))
}
