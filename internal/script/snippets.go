package script

import "fmt"

// DefaultLanguage is the snippet pool used when the requested language has
// no pool of its own.
const DefaultLanguage = "typescript"

var snippetPools = map[string][]string{
	"typescript": {
		`// %s
interface ApiResponse<T> {
  data: T;
  status: 'success' | 'error';
  timestamp: Date;
}`,
		`async function fetchData<T>(
  endpoint: string
): Promise<ApiResponse<T>> {
  const response = await fetch(endpoint);
  return response.json();
}`,
		`const result = await fetchData<User[]>(
  '/api/users'
);
console.log(result.data);`,
	},
	"react": {
		`// %s
import { useState, useEffect } from 'react';`,
		`export const Component = () => {
  const [data, setData] = useState(null);

  useEffect(() => {
    loadData();
  }, []);`,
		`  return (
    <div className="container">
      {data && <DataView data={data} />}
    </div>
  );
};`,
	},
	"python": {
		`# %s
from typing import List, Dict
import asyncio`,
		`async def process_data(
    items: List[Dict]
) -> Dict:
    results = await asyncio.gather(*[
        handle_item(item)
        for item in items
    ])
    return {"processed": results}`,
		`if __name__ == "__main__":
    data = load_data()
    result = asyncio.run(
        process_data(data)
    )
    print(result)`,
	},
	"go": {
		`// %s
type Result[T any] struct {
	Data   T
	Status string
}`,
		`func fetch[T any](ctx context.Context, url string) (Result[T], error) {
	resp, err := client.Get(url)
	if err != nil {
		return Result[T]{}, err
	}
	defer resp.Body.Close()
	var out Result[T]
	return out, json.NewDecoder(resp.Body).Decode(&out)
}`,
		`result, err := fetch[[]User](ctx, "/api/users")
if err != nil {
	log.Fatal(err)
}
fmt.Println(result.Data)`,
	},
	"rust": {
		`// %s
#[derive(Debug, Deserialize)]
struct ApiResponse<T> {
    data: T,
    status: String,
}`,
		`async fn fetch_data<T: DeserializeOwned>(
    endpoint: &str,
) -> Result<ApiResponse<T>, reqwest::Error> {
    let resp = reqwest::get(endpoint).await?;
    resp.json().await
}`,
		`let result = fetch_data::<Vec<User>>("/api/users")
    .await?;
println!("{:?}", result.data);`,
	},
}

// SnippetsFor returns the snippet pool for a language with the prompt
// interpolated into the leading comment. Languages without a pool fall back
// to the TypeScript pool.
func SnippetsFor(prompt, language string) []string {
	pool, ok := snippetPools[language]
	if !ok {
		pool = snippetPools[DefaultLanguage]
	}

	out := make([]string, len(pool))
	for i, tmpl := range pool {
		if i == 0 {
			out[i] = fmt.Sprintf(tmpl, prompt)
		} else {
			out[i] = tmpl
		}
	}
	return out
}

// ApplyCodeSnippets fills code_content on every typing/reveal scene, cycling
// through the pool by occurrence index so long scripts wrap around.
func ApplyCodeSnippets(s *VideoScript, prompt, language string) {
	snippets := SnippetsFor(prompt, language)
	if len(snippets) == 0 {
		return
	}

	codeIndex := 0
	for i := range s.Scenes {
		if HasCode(s.Scenes[i].Type) {
			s.Scenes[i].CodeContent = snippets[codeIndex%len(snippets)]
			codeIndex++
		}
	}
}
