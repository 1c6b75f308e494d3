package model

const deftem = `// titanic survival, {{ .Var }} variant
// version: {{ .Ver }}

data {
  int<lower=0> N;
  vector<lower=0>[N] age;
  array[N] int<lower=1, upper={{ .Sex }}> sex;
{{- if .Cla }}
  array[N] int<lower=1, upper={{ .Nca }}> cla;
{{- end }}
  array[N] int<lower=0, upper=1> survived;
}

parameters {
  vector[{{ .Sex }}] alpha;
  real beta;
{{- if eq .Var "class" }}
  vector[{{ .Nca }} - 1] beta_class;
{{- end }}
{{- if eq .Var "hierarchical" }}
  real<lower=0> tau;
  matrix[{{ .Sex }}, {{ .Nca }}] z;
{{- end }}
}

model {
  vector[N] eta;

  alpha ~ std_normal();
  beta ~ std_normal();
{{- if eq .Var "class" }}
  beta_class ~ std_normal();
{{- end }}
{{- if eq .Var "hierarchical" }}
  tau ~ std_normal();
  to_vector(z) ~ std_normal();
{{- end }}

  for (n in 1:N) {
    eta[n] = alpha[sex[n]] + beta * age[n];
{{- if eq .Var "class" }}
    if (cla[n] > 1) {
      eta[n] += beta_class[cla[n] - 1];
    }
{{- end }}
{{- if eq .Var "hierarchical" }}
    eta[n] += tau * z[sex[n], cla[n]];
{{- end }}
  }

  survived ~ bernoulli_logit(eta);
}
`
