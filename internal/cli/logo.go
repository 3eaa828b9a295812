package cli

// asciiLogo is shown on the root help screen and by the version command.
const asciiLogo = `
  _ _  ___  _ __  ___ _ _
 | ' \/ _ \| '  \/ -_) ' \
 |_||_\___/|_|_|_\___|_||_|`
