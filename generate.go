package tiktoken

// Generate documentation for the root package.
//go:generate gomarkdoc -o README.md -e . --embed --repository.url https://github.com/agentstation/tiktoken --repository.default-branch main --repository.path /

// Generate documentation for the CLI package.
//go:generate gomarkdoc -o ./cmd/tokenizer/README.md -e ./cmd/tokenizer --embed --repository.url https://github.com/agentstation/tiktoken --repository.default-branch main --repository.path /cmd/tokenizer
