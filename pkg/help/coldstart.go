package help

const ColdstartYAML = `# keyheat Quick Start

log_format:
  - "One token per key press, separated by whitespace"
  - "A newline follows a pause of 500ms or more"
  - "Named keys use brackets: <Space> <Tab> <Return> <Backspace> <ShiftLeft>"

color_strategies:
  lightness: "Red hue, 90% (unused) to 30% (most used) lightness (default)"
  hue: "Blue (unused) to red (most used)"

max_scope:
  global: "Colors scale to the most frequent token in the log (default)"
  layout: "Colors scale to the most used key of each layout"

commands:
  record: |
    keyheat record --dir recordings

  analyze: |
    keyheat analyze recordings/
    keyheat analyze --format yaml keys.log

  bigrams: |
    keyheat bigrams --top 20 keys.log

  heatmap: |
    keyheat heatmap keys.log
    keyheat heatmap --png heat.png --strategy hue --layouts qwerty,bem keys.log

  layouts: |
    keyheat layouts import --name bem layouts/bem.json
    keyheat layouts list
    keyheat layouts show bem
    keyheat layouts delete bem

  interactive: |
    keyheat interactive keys.log
    keyheat> bigrams 5
    keyheat> heatmap heat.png

layout_lookup:
  - "layout_dir/<name>.json, .yaml or .yml"
  - "SQLite layout store (--db), filled by 'layouts import'"
  - "layout_url/<name>.json, cached in cache_dir"
  - "Built in: qwerty"

config_file: |
  # keyheat.yaml
  layouts: [qwerty]
  strategy: lightness
  scope: global
  offset: {x: 0, y: 300}
  top_n: 10
  alias_file: aliases.yaml
  aliases:
    muhenkan: ["<Unknown(235)>"]
`
